package httpapi

import "github.com/datamind-io/authcore/internal/server/models"

// SignupRequest is the JSON body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned from POST /auth/signup.
type SignupResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ConnectRequest is the JSON body for POST /db/connect.
type ConnectRequest struct {
	Type     string `json:"db_type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// ContextResponse is returned from GET /db/context. The embedded data-source
// descriptor is always the redacted form.
type ContextResponse struct {
	UserID    string             `json:"user_id"`
	Email     string             `json:"email"`
	ActiveDB  *models.DataSource `json:"active_db,omitempty"`
	LastQuery string             `json:"last_query,omitempty"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body for all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
