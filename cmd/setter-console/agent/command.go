// Package agentcmd hosts the voice-agent management commands.
package agentcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/agent"
	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/session"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage voice agents",
	}

	cmd.AddCommand(
		createCmd(buildInfo),
		listCmd(buildInfo),
		getCmd(buildInfo),
		updateCmd(buildInfo),
		deleteCmd(buildInfo),
		activateCmd(buildInfo),
		deactivateCmd(buildInfo),
		voicesCmd(buildInfo),
		voicePreviewCmd(buildInfo),
	)

	return cmd
}

func agentFlags(cmd *cobra.Command, params *agent.Params) {
	cmd.Flags().StringVar(&params.Name, "name", "", "agent name")
	cmd.Flags().StringVar(&params.GreetingMessage, "greeting", "", "greeting read to callers")
	cmd.Flags().StringVar(&params.Language, "language", "", "agent language, e.g. en-US")
	cmd.Flags().StringVar(&params.VoiceID, "voice-id", "", "voice from the catalog")
	cmd.Flags().StringVar(&params.ServiceType, "service-type", "", "service the agent schedules")
}

func createCmd(buildInfo string) *cobra.Command {
	var params agent.Params

	cmd := &cobra.Command{
		Use:   "create <tenant-id>",
		Short: "Create an agent for a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			created, err := agent.NewService(rt.Client).Create(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(created)
		}),
	}

	agentFlags(cmd, &params)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <tenant-id>",
		Short: "List a tenant's agents",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			agents, err := agent.NewService(rt.Client).List(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(agents)
		}),
	}
}

func getCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := agent.NewService(rt.Client).Get(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}
}

func updateCmd(buildInfo string) *cobra.Command {
	var params agent.Params

	cmd := &cobra.Command{
		Use:   "update <agent-id>",
		Short: "Update an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := agent.NewService(rt.Client).Update(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}

	agentFlags(cmd, &params)

	return cmd
}

func deleteCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			return agent.NewService(rt.Client).Delete(ctx, args[0])
		}),
	}
}

func activateCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <agent-id>",
		Short: "Activate an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := agent.NewService(rt.Client).Activate(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}
}

func deactivateCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <agent-id>",
		Short: "Deactivate an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			a, err := agent.NewService(rt.Client).Deactivate(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(a)
		}),
	}
}

func voicesCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the available voice catalog",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			voices, err := agent.NewService(rt.Client).Voices(ctx)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(voices)
		}),
	}
}

func voicePreviewCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "voice-preview <voice-id>",
		Short: "Get a preview clip URL for a voice",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			preview, err := agent.NewService(rt.Client).VoicePreview(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(preview)
		}),
	}
}
