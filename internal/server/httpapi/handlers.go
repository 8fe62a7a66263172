package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/datamind-io/authcore/internal/server/models"
)

const maxBodySize = 1 << 20 // 1 MiB

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return v, false
	}
	return v, true
}

// Health handles GET /health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Signup handles POST /auth/signup.
func (a *API) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[SignupRequest](w, r)
	if !ok {
		return
	}

	userID, err := a.svc.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{UserID: userID})
}

// Login handles POST /auth/login.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[LoginRequest](w, r)
	if !ok {
		return
	}

	token, err := a.svc.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout handles POST /auth/logout.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := a.svc.LogOut(r.Context(), token); err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// ConnectDB handles POST /db/connect.
func (a *API) ConnectDB(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	req, ok := decodeJSON[ConnectRequest](w, r)
	if !ok {
		return
	}

	in := models.DataSourceInput{
		Type:     req.Type,
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		Database: req.Database,
	}
	if err := a.svc.AttachDataSource(r.Context(), token, in); err != nil {
		mapError(w, err)
		return
	}

	a.logger.Info(r.Context(), "data source attached", "db_type", req.Type, "host", req.Host)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "database connected"})
}

// GetContext handles GET /db/context. The service layer has already
// redacted the data-source descriptor before it reaches this handler.
func (a *API) GetContext(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	sc, err := a.svc.Context(r.Context(), token)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ContextResponse{
		UserID:    sc.UserID,
		Email:     sc.Email,
		ActiveDB:  sc.ActiveDB,
		LastQuery: sc.LastQuery,
	})
}
