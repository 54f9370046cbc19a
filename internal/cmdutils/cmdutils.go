// Package cmdutils carries the plumbing shared by every console command:
// config loading, logger initialisation, session/pipeline construction and
// route-guard enforcement.
package cmdutils

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/coding1100/appointment-setter-console/internal/api"
	"github.com/coding1100/appointment-setter-console/internal/config"
	"github.com/coding1100/appointment-setter-console/internal/serviceerr"
	"github.com/coding1100/appointment-setter-console/internal/session"
	"github.com/coding1100/appointment-setter-console/internal/tokenstore"
	tokenstorevalkey "github.com/coding1100/appointment-setter-console/internal/tokenstore/valkey"
)

// Runtime bundles the constructed session manager and request pipeline for
// one command invocation.
type Runtime struct {
	Config   *config.Config
	Sessions *session.Manager
	Client   *api.Client

	closeFn func()
}

func (r *Runtime) Close() {
	if r.closeFn != nil {
		r.closeFn()
	}
}

// RunE adapts a command body into a cobra RunE: config is loaded, the runtime
// constructed, rehydration run, and the surface's route-guard decision
// enforced before the body executes.
func RunE(buildInfo string, surface session.Surface, fn func(context.Context, *Runtime, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := LoadConfig(buildInfo)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := logger.InitAsDefault(cfg.Logger, cfg.Application); err != nil {
			return oops.In("main").
				Wrapf(err, "Failed to initialise the logger")
		}

		if err := api.InitMeters(ctx, cfg); err != nil {
			return oops.In("main").
				Wrapf(err, "Failed to initialise the meters")
		}

		rt, err := NewRuntime(ctx, cfg)
		if err != nil {
			return fmt.Errorf("constructing runtime: %w", err)
		}
		defer rt.Close()

		if err := Guard(ctx, rt, surface); err != nil {
			return err
		}

		return fn(ctx, rt, args)
	}
}

func LoadConfig(buildInfo string) (*config.Config, error) {
	defaultValues := map[string]any{}
	cfg := &config.Config{}

	err := commoncfg.LoadConfig(
		cfg,
		defaultValues,
		"/etc/setter-console",
		"$HOME/.setter-console",
		".",
	)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	err = commoncfg.UpdateConfigVersion(
		&cfg.BaseConfig,
		buildInfo,
	)
	if err != nil {
		return nil, fmt.Errorf("updating the version configuration: %w", err)
	}

	return cfg, nil
}

func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	tokens, closeFn, err := newTokenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("constructing token store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	sessions := session.NewManager(
		&cfg.API,
		tokens,
		httpClient,
		session.WithExpiredHandler(func(ctx context.Context) {
			slogctx.Warn(ctx, "Session expired")
			_, _ = fmt.Fprintln(os.Stderr, "Your session has expired. Run 'setter-console auth login' to sign in again.")
		}),
	)

	client := api.NewClient(
		cfg.API.BaseURL,
		api.WithHTTPClient(httpClient),
		api.WithCredentials(sessions),
		api.WithRefreshLeeway(cfg.API.RefreshLeeway),
	)

	return &Runtime{
		Config:   cfg,
		Sessions: sessions,
		Client:   client,
		closeFn:  closeFn,
	}, nil
}

// Guard rehydrates the session and enforces the route-guard decision for the
// command's surface.
func Guard(ctx context.Context, rt *Runtime, surface session.Surface) error {
	if err := rt.Sessions.Rehydrate(ctx); err != nil {
		return fmt.Errorf("rehydrating session: %w", err)
	}

	switch session.Guard(rt.Sessions.Snapshot(), surface) {
	case session.DecisionAllow:
		return nil
	case session.DecisionLogin:
		return serviceerr.ErrLoginRequired
	case session.DecisionHome:
		return serviceerr.ErrAlreadyLoggedIn
	default:
		// Rehydrate has settled, so DecisionWait cannot occur here.
		return nil
	}
}

func newTokenStore(cfg *config.Config) (tokenstore.Store, func(), error) {
	switch cfg.TokenStore.Type {
	case "", "file":
		return tokenstore.NewFileStore(os.ExpandEnv(cfg.TokenStore.Path)), nil, nil
	case "valkey":
		valkeyHost, err := commoncfg.LoadValueFromSourceRef(cfg.TokenStore.ValKey.Host)
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey host: %w", err)
		}

		valkeyUsername, err := commoncfg.LoadValueFromSourceRef(cfg.TokenStore.ValKey.User)
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey username: %w", err)
		}

		valkeyPassword, err := commoncfg.LoadValueFromSourceRef(cfg.TokenStore.ValKey.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("loading valkey password: %w", err)
		}

		valkeyClient, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{string(valkeyHost)},
			Username:    string(valkeyUsername),
			Password:    string(valkeyPassword),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating a new valkey client: %w", err)
		}

		return tokenstorevalkey.NewStore(valkeyClient, cfg.TokenStore.ValKey.Prefix), valkeyClient.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store type: %q", cfg.TokenStore.Type)
	}
}
