// Package httpapi exposes the session service over a small JSON REST
// surface. Raw data-source credentials are deliberately not routable here;
// that retrieval stays an in-process call for the query engine.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/datamind-io/authcore/internal/logging"
	"github.com/datamind-io/authcore/internal/server/models"
)

// SessionService is the subset of the session service the handlers need.
type SessionService interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	LogIn(ctx context.Context, email, password string) (string, error)
	AttachDataSource(ctx context.Context, token string, in models.DataSourceInput) error
	Context(ctx context.Context, token string) (*models.SessionContext, error)
	LogOut(ctx context.Context, token string) error
}

// API holds the dependencies needed by the REST handlers.
type API struct {
	svc    SessionService
	logger logging.Logger
}

// New creates a new API instance.
func New(svc SessionService, logger logging.Logger) *API {
	return &API{svc: svc, logger: logger.With("module", "httpapi")}
}

// Router returns a chi.Router with all routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", a.Health)

	r.Post("/auth/signup", a.Signup)
	r.Post("/auth/login", a.Login)
	r.Post("/auth/logout", a.Logout)

	r.Post("/db/connect", a.ConnectDB)
	r.Get("/db/context", a.GetContext)

	return r
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
