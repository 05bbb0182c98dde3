package adapthttp

import (
	"context"
	"net/http"
	"time"

	"weighttrack/internal/app"
	"weighttrack/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the optional single sign-on provider.
type OIDCConfig struct {
	Enabled      bool
	OAuth2Config *oauth2.Config
	Provider     *oidc.Provider
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *app.AuthService
	accounts   *app.AccountService
	weight     *app.WeightService
	summary    *app.SummaryService
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, accounts *app.AccountService, ws *app.WeightService, ss *app.SummaryService, oidcConfig OIDCConfig) *Server {
	return &Server{
		authSvc:    auth,
		accounts:   accounts,
		weight:     ws,
		summary:    ss,
		oidcConfig: oidcConfig,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.Handle("/me", s.authMiddleware(http.HandlerFunc(s.handleMe)))
	api.Handle("/account/goal", s.authMiddleware(http.HandlerFunc(s.handleGoal)))
	api.Handle("/account/phone", s.authMiddleware(http.HandlerFunc(s.handlePhone)))

	api.Handle("/entries", s.authMiddleware(http.HandlerFunc(s.handleEntries)))
	api.Handle("/entries/delete", s.authMiddleware(http.HandlerFunc(s.handleEntriesDelete)))
	api.Handle("/entries/latest", s.authMiddleware(http.HandlerFunc(s.handleEntriesLatest)))

	api.Handle("/summary", s.authMiddleware(http.HandlerFunc(s.handleSummary)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}

// PurgeSessions deletes expired sessions every interval until ctx is done.
func (s *Server) PurgeSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.authSvc.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("purge expired sessions", "err", err)
			}
		}
	}
}
