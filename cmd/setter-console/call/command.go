// Package callcmd hosts the voice-agent test session commands and the
// backend health probes operators use when a call misbehaves.
package callcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/health"
	"github.com/coding1100/appointment-setter-console/internal/session"
	"github.com/coding1100/appointment-setter-console/internal/voiceagent"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Run and inspect voice-agent sessions",
	}

	cmd.AddCommand(
		startCmd(buildInfo),
		statusCmd(buildInfo),
		watchCmd(buildInfo),
		endCmd(buildInfo),
		sessionsCmd(buildInfo),
		statsCmd(buildInfo),
		healthCmd(buildInfo),
	)

	return cmd
}

func startCmd(buildInfo string) *cobra.Command {
	var (
		params voiceagent.StartParams
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a voice session",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			svc := voiceagent.NewService(rt.Client)

			info, err := svc.Start(ctx, params)
			if err != nil {
				return err
			}

			if !watch {
				return cmdutils.PrintYAML(info)
			}

			final, err := waitForSession(ctx, rt, svc, info.SessionID)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(final)
		}),
	}

	cmd.Flags().StringVar(&params.TenantID, "tenant-id", "", "owning tenant")
	cmd.Flags().StringVar(&params.ServiceType, "service-type", "", "service type the agent handles")
	cmd.Flags().BoolVar(&params.TestMode, "test-mode", true, "run against the test media pipeline")
	cmd.Flags().StringVar(&params.PhoneNumber, "phone-number", "", "outbound number to dial")
	cmd.Flags().BoolVar(&watch, "watch", false, "poll until the session ends")
	_ = cmd.MarkFlagRequired("tenant-id")
	_ = cmd.MarkFlagRequired("service-type")

	return cmd
}

func statusCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show a session's status",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			info, err := voiceagent.NewService(rt.Client).Status(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(info)
		}),
	}
}

func watchCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <session-id>",
		Short: "Poll a session until it ends",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			final, err := waitForSession(ctx, rt, voiceagent.NewService(rt.Client), args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(final)
		}),
	}
}

func waitForSession(ctx context.Context, rt *cmdutils.Runtime, svc *voiceagent.Service, sessionID string) (voiceagent.SessionInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, rt.Config.Poll.Timeout)
	defer cancel()

	poller := voiceagent.NewPoller(svc, rt.Config.Poll.Interval)

	return poller.Wait(ctx, sessionID, func(info voiceagent.SessionInfo) {
		fmt.Printf("session %s: %s\n", info.SessionID, info.Status)
	})
}

func endCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			info, err := voiceagent.NewService(rt.Client).End(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(info)
		}),
	}
}

func sessionsCmd(buildInfo string) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "sessions <tenant-id>",
		Short: "List a tenant's sessions",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			sessions, err := voiceagent.NewService(rt.Client).TenantSessions(ctx, args[0], activeOnly)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(sessions)
		}),
	}

	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "only sessions that have not ended")

	return cmd
}

func statsCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <tenant-id>",
		Short: "Show a tenant's call stats",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			stats, err := voiceagent.NewService(rt.Client).AgentStats(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(stats)
		}),
	}
}

func healthCmd(buildInfo string) *cobra.Command {
	var probe string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe backend health",
		RunE: cmdutils.RunE(buildInfo, session.SurfacePublic, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			svc := health.NewService(rt.Client)

			switch probe {
			case "detailed":
				detail, err := svc.Detailed(ctx)
				if err != nil {
					return err
				}
				return cmdutils.PrintYAML(detail)
			case "ready":
				if err := svc.Ready(ctx); err != nil {
					return err
				}
				fmt.Println("ready")
				return nil
			case "live":
				if err := svc.Live(ctx); err != nil {
					return err
				}
				fmt.Println("live")
				return nil
			case "", "basic":
				status, err := svc.Check(ctx)
				if err != nil {
					return err
				}
				return cmdutils.PrintYAML(status)
			default:
				return fmt.Errorf("unknown probe: %q", probe)
			}
		}),
	}

	cmd.Flags().StringVar(&probe, "probe", "basic", "probe to run: basic, detailed, ready or live")

	return cmd
}
