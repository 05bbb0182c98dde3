package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/logger"
)

// ServeCmd runs the HTTP API until interrupted.
type ServeCmd struct {
	Addr             string        `help:"Listen address." default:":8080" env:"ADDR"`
	OIDCIssuer       string        `name:"oidc-issuer" help:"OIDC issuer URL; enables SSO when set." env:"OIDC_ISSUER"`
	OIDCClientID     string        `name:"oidc-client-id" help:"OIDC client id." env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string        `name:"oidc-client-secret" help:"OIDC client secret." env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string        `name:"oidc-redirect-url" help:"OIDC redirect URL." env:"OIDC_REDIRECT_URL"`
	PurgeInterval    time.Duration `name:"session-purge-interval" help:"How often expired sessions are deleted." default:"1h" env:"SESSION_PURGE_INTERVAL"`
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (cmd *ServeCmd) Run(c *Context) error {
	ctx, stop := signal.NotifyContext(c.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var oidcCfg adapthttp.OIDCConfig
	if cmd.OIDCIssuer != "" {
		cfg, err := adapthttp.NewOIDCConfig(ctx, cmd.OIDCIssuer, cmd.OIDCClientID, cmd.OIDCClientSecret, cmd.OIDCRedirectURL)
		if err != nil {
			return err
		}
		oidcCfg = cfg
		logger.Info("sso enabled", "issuer", cmd.OIDCIssuer)
	}

	srv := adapthttp.New(c.Auth, c.Accounts, c.Weights, c.Summary, oidcCfg)
	go srv.PurgeSessions(ctx, cmd.PurgeInterval)

	httpSrv := &http.Server{
		Addr:              cmd.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cmd.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
