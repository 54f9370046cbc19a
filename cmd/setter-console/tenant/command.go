// Package tenantcmd hosts the tenant management commands.
package tenantcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/session"
	"github.com/coding1100/appointment-setter-console/internal/tenant"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	cmd.AddCommand(
		createCmd(buildInfo),
		listCmd(buildInfo),
		getCmd(buildInfo),
		updateCmd(buildInfo),
		activateCmd(buildInfo),
		deactivateCmd(buildInfo),
		businessInfoCmd(buildInfo),
		agentSettingsCmd(buildInfo),
		twilioCmd(buildInfo),
	)

	return cmd
}

func createCmd(buildInfo string) *cobra.Command {
	var params tenant.Params

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			created, err := tenant.NewService(rt.Client).Create(ctx, params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(created)
		}),
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "tenant name")
	cmd.Flags().StringVar(&params.Timezone, "timezone", "", "tenant timezone, e.g. America/New_York")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			tenants, err := tenant.NewService(rt.Client).List(ctx, limit, offset)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(tenants)
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")

	return cmd
}

func getCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <tenant-id>",
		Short: "Show a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			t, err := tenant.NewService(rt.Client).Get(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(t)
		}),
	}
}

func updateCmd(buildInfo string) *cobra.Command {
	var params tenant.Params

	cmd := &cobra.Command{
		Use:   "update <tenant-id>",
		Short: "Update a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			t, err := tenant.NewService(rt.Client).Update(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(t)
		}),
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "tenant name")
	cmd.Flags().StringVar(&params.Timezone, "timezone", "", "tenant timezone")

	return cmd
}

func activateCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <tenant-id>",
		Short: "Activate a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			t, err := tenant.NewService(rt.Client).Activate(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(t)
		}),
	}
}

func deactivateCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <tenant-id>",
		Short: "Deactivate a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			t, err := tenant.NewService(rt.Client).Deactivate(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(t)
		}),
	}
}

func businessInfoCmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business-info",
		Short: "Manage a tenant's business profile",
	}

	var info tenant.BusinessInfo

	setCmd := &cobra.Command{
		Use:   "set <tenant-id>",
		Short: "Create or replace the business profile",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			svc := tenant.NewService(rt.Client)

			// Try update first; fall back to create when none exists yet.
			updated, err := svc.UpdateBusinessInfo(ctx, args[0], info)
			if err != nil {
				created, createErr := svc.CreateBusinessInfo(ctx, args[0], info)
				if createErr != nil {
					return fmt.Errorf("%w (update also failed: %w)", createErr, err)
				}
				updated = created
			}

			return cmdutils.PrintYAML(updated)
		}),
	}
	setCmd.Flags().StringVar(&info.BusinessName, "business-name", "", "display name read to callers")
	setCmd.Flags().StringVar(&info.Phone, "phone", "", "contact phone")
	setCmd.Flags().StringVar(&info.Email, "email", "", "contact email")
	setCmd.Flags().StringVar(&info.Address, "address", "", "business address")
	setCmd.Flags().StringVar(&info.Description, "description", "", "business description")
	_ = setCmd.MarkFlagRequired("business-name")

	getCmd := &cobra.Command{
		Use:   "get <tenant-id>",
		Short: "Show the business profile",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			got, err := tenant.NewService(rt.Client).GetBusinessInfo(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(got)
		}),
	}

	cmd.AddCommand(setCmd, getCmd)

	return cmd
}

func agentSettingsCmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent-settings",
		Short: "Manage a tenant's default agent settings",
	}

	var settings tenant.AgentSettings

	setCmd := &cobra.Command{
		Use:   "set <tenant-id>",
		Short: "Create or replace the default agent settings",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			svc := tenant.NewService(rt.Client)

			updated, err := svc.UpdateAgentSettings(ctx, args[0], settings)
			if err != nil {
				created, createErr := svc.CreateAgentSettings(ctx, args[0], settings)
				if createErr != nil {
					return fmt.Errorf("%w (update also failed: %w)", createErr, err)
				}
				updated = created
			}

			return cmdutils.PrintYAML(updated)
		}),
	}
	setCmd.Flags().StringVar(&settings.GreetingMessage, "greeting", "", "greeting read to callers")
	setCmd.Flags().StringVar(&settings.Language, "language", "", "agent language, e.g. en-US")
	setCmd.Flags().StringVar(&settings.VoiceID, "voice-id", "", "voice from the catalog")
	setCmd.Flags().StringVar(&settings.ServiceType, "service-type", "", "service the agent schedules")

	getCmd := &cobra.Command{
		Use:   "get <tenant-id>",
		Short: "Show the default agent settings",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			got, err := tenant.NewService(rt.Client).GetAgentSettings(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(got)
		}),
	}

	cmd.AddCommand(setCmd, getCmd)

	return cmd
}

func twilioCmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twilio",
		Short: "Manage a tenant's Twilio credentials",
	}

	var params tenant.TwilioParams

	configureCmd := &cobra.Command{
		Use:   "configure <tenant-id>",
		Short: "Create or replace the Twilio integration",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			svc := tenant.NewService(rt.Client)

			updated, err := svc.UpdateTwilioIntegration(ctx, args[0], params)
			if err != nil {
				created, createErr := svc.CreateTwilioIntegration(ctx, args[0], params)
				if createErr != nil {
					return fmt.Errorf("%w (update also failed: %w)", createErr, err)
				}
				updated = created
			}

			return cmdutils.PrintYAML(updated)
		}),
	}
	configureCmd.Flags().StringVar(&params.AccountSID, "account-sid", "", "Twilio account SID")
	configureCmd.Flags().StringVar(&params.AuthToken, "auth-token", "", "Twilio auth token")
	configureCmd.Flags().StringVar(&params.Country, "country", "US", "number search country")
	configureCmd.Flags().StringVar(&params.AreaCode, "area-code", "", "number search area code")
	configureCmd.Flags().StringVar(&params.NumberType, "number-type", "local", "number type: local or toll-free")
	_ = configureCmd.MarkFlagRequired("account-sid")
	_ = configureCmd.MarkFlagRequired("auth-token")

	getCmd := &cobra.Command{
		Use:   "get <tenant-id>",
		Short: "Show the Twilio integration",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			got, err := tenant.NewService(rt.Client).GetTwilioIntegration(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(got)
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <tenant-id>",
		Short: "Remove the Twilio integration",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			return tenant.NewService(rt.Client).DeleteTwilioIntegration(ctx, args[0])
		}),
	}

	cmd.AddCommand(configureCmd, getCmd, deleteCmd)

	return cmd
}
