// Package phonecmd hosts the phone-number assignment commands.
package phonecmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/phonenumber"
	"github.com/coding1100/appointment-setter-console/internal/session"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone-number",
		Short: "Manage phone numbers",
	}

	cmd.AddCommand(
		createCmd(buildInfo),
		listCmd(buildInfo),
		getCmd(buildInfo),
		byAgentCmd(buildInfo),
		updateCmd(buildInfo),
		deleteCmd(buildInfo),
		assignCmd(buildInfo),
		unassignCmd(buildInfo),
	)

	return cmd
}

func createCmd(buildInfo string) *cobra.Command {
	var params phonenumber.Params

	cmd := &cobra.Command{
		Use:   "create <tenant-id>",
		Short: "Register a phone number for a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			created, err := phonenumber.NewService(rt.Client).Create(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(created)
		}),
	}

	cmd.Flags().StringVar(&params.PhoneNumber, "number", "", "phone number in E.164 format")
	cmd.Flags().StringVar(&params.AgentID, "agent-id", "", "agent to assign immediately")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func listCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <tenant-id>",
		Short: "List a tenant's phone numbers",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			numbers, err := phonenumber.NewService(rt.Client).List(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(numbers)
		}),
	}
}

func getCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <phone-id>",
		Short: "Show a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			n, err := phonenumber.NewService(rt.Client).Get(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(n)
		}),
	}
}

func byAgentCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "by-agent <agent-id>",
		Short: "Show the number assigned to an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			n, err := phonenumber.NewService(rt.Client).ByAgent(ctx, args[0])
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(n)
		}),
	}
}

func updateCmd(buildInfo string) *cobra.Command {
	var params phonenumber.Params

	cmd := &cobra.Command{
		Use:   "update <phone-id>",
		Short: "Update a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			n, err := phonenumber.NewService(rt.Client).Update(ctx, args[0], params)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(n)
		}),
	}

	cmd.Flags().StringVar(&params.PhoneNumber, "number", "", "phone number in E.164 format")
	cmd.Flags().StringVar(&params.AgentID, "agent-id", "", "assigned agent")

	return cmd
}

func deleteCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <phone-id>",
		Short: "Delete a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			return phonenumber.NewService(rt.Client).Delete(ctx, args[0])
		}),
	}
}

func assignCmd(buildInfo string) *cobra.Command {
	var agentID, number string

	cmd := &cobra.Command{
		Use:   "assign <tenant-id>",
		Short: "Assign a number to an agent",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			n, err := phonenumber.NewService(rt.Client).Assign(ctx, args[0], agentID, number)
			if err != nil {
				return err
			}
			return cmdutils.PrintYAML(n)
		}),
	}

	cmd.Flags().StringVar(&agentID, "agent-id", "", "agent receiving the number")
	cmd.Flags().StringVar(&number, "number", "", "phone number in E.164 format")
	_ = cmd.MarkFlagRequired("agent-id")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func unassignCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <agent-id>",
		Short: "Remove an agent's number assignment",
		Args:  cobra.ExactArgs(1),
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, args []string) error {
			return phonenumber.NewService(rt.Client).Unassign(ctx, args[0])
		}),
	}
}
