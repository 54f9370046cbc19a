package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/openkcm/common-sdk/pkg/utils"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	agentcmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/agent"
	appointmentcmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/appointment"
	authcmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/auth"
	callcmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/call"
	"github.com/coding1100/appointment-setter-console/cmd/setter-console/configdump"
	phonecmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/phonenumber"
	tenantcmd "github.com/coding1100/appointment-setter-console/cmd/setter-console/tenant"
)

// BuildInfo will be set by the build system
var BuildInfo = "{}"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Setter Console Version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		value, err := utils.ExtractFromComplexValue(BuildInfo)
		if err != nil {
			return err
		}

		slog.InfoContext(cmd.Context(), value)

		return nil
	},
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setter-console",
		Short: "Appointment Setter Console",
		Long:  "Administrative console for the multi-tenant voice-agent scheduling platform.",
	}

	cmd.AddCommand(
		versionCmd,
		authcmd.Cmd(BuildInfo),
		tenantcmd.Cmd(BuildInfo),
		agentcmd.Cmd(BuildInfo),
		appointmentcmd.Cmd(BuildInfo),
		phonecmd.Cmd(BuildInfo),
		callcmd.Cmd(BuildInfo),
		configdump.Cmd(BuildInfo),
	)

	return cmd
}

func execute() error {
	ctx, cancelOnSignal := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancelOnSignal()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		slogctx.Error(ctx, "command failed", "error", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return err
	}

	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
