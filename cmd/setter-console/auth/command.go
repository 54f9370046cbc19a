// Package authcmd hosts the login, logout, register and whoami commands.
package authcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coding1100/appointment-setter-console/internal/cmdutils"
	"github.com/coding1100/appointment-setter-console/internal/serviceerr"
	"github.com/coding1100/appointment-setter-console/internal/session"
)

func Cmd(buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the console session",
	}

	cmd.AddCommand(
		loginCmd(buildInfo),
		logoutCmd(buildInfo),
		registerCmd(buildInfo),
		whoamiCmd(buildInfo),
	)

	return cmd
}

func loginCmd(buildInfo string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		RunE: cmdutils.RunE(buildInfo, session.SurfacePublicOnly, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			if password == "" {
				var err error
				password, err = readSecret("Password: ")
				if err != nil {
					return err
				}
			}

			sess, err := rt.Sessions.Login(ctx, session.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return describeAuthError(err)
			}

			fmt.Printf("Logged in as %s\n", sess.User.Username)

			return nil
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func logoutCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the refresh token and clear local session state",
		RunE: cmdutils.RunE(buildInfo, session.SurfacePublic, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			if err := rt.Sessions.Logout(ctx); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		}),
	}
}

func registerCmd(buildInfo string) *cobra.Command {
	var profile session.Profile

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an operator account",
		Long:  "Create an operator account. Registration does not sign you in; run 'auth login' afterwards.",
		RunE: cmdutils.RunE(buildInfo, session.SurfacePublicOnly, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			if profile.Password == "" {
				var err error
				profile.Password, err = readSecret("Password: ")
				if err != nil {
					return err
				}
			}

			user, err := rt.Sessions.Register(ctx, profile)
			if err != nil {
				return describeAuthError(err)
			}

			fmt.Printf("Registered %s; run 'setter-console auth login' to sign in\n", user.Username)

			return nil
		}),
	}

	cmd.Flags().StringVar(&profile.Username, "username", "", "account username")
	cmd.Flags().StringVar(&profile.Email, "email", "", "account email")
	cmd.Flags().StringVar(&profile.Password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&profile.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&profile.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func whoamiCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: cmdutils.RunE(buildInfo, session.SurfaceProtected, func(ctx context.Context, rt *cmdutils.Runtime, _ []string) error {
			snap := rt.Sessions.Snapshot()
			return cmdutils.PrintYAML(snap.User)
		}),
	}
}

func describeAuthError(err error) error {
	var validationErr *serviceerr.ValidationError
	if errors.As(err, &validationErr) {
		for _, line := range validationErr.Flatten() {
			_, _ = fmt.Fprintln(os.Stderr, line)
		}
	}

	return err
}

func readSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	// On a terminal the secret must not be echoed; piped stdin falls back to
	// a plain line read.
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
