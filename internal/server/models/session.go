package models

import "time"

// SessionContext is the server-side mutable record keyed by session token.
// It is stored as a JSON blob in the session cache and as a plain value in
// the in-memory store; both backends honor ExpiresAt.
type SessionContext struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
	ActiveDB  *DataSource `json:"active_db,omitempty"`

	// LastQuery is reserved for the downstream query engine; this service
	// only carries it.
	LastQuery string `json:"last_query,omitempty"`
}

// Clone returns a deep copy so callers can hand out session records without
// sharing the stored ActiveDB pointer.
func (s *SessionContext) Clone() *SessionContext {
	if s == nil {
		return nil
	}
	cp := *s
	if s.ActiveDB != nil {
		db := *s.ActiveDB
		cp.ActiveDB = &db
	}
	return &cp
}

// DataSource describes the downstream database a session routes queries to.
// Exactly one of PasswordCipher or PasswordPlain is set, depending on
// whether an encryption key was configured at the time of attachment.
type DataSource struct {
	Type     string `json:"db_type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Database string `json:"database"`

	// DSN is the redacted connection string (no secret), computed at
	// attach time.
	DSN string `json:"dsn"`

	PasswordCipher string `json:"password_enc,omitempty"`
	PasswordPlain  string `json:"password,omitempty"`
}

// Redacted returns a copy with every password representation removed.
// All context-fetch paths must go through this before returning a
// descriptor to a caller.
func (d *DataSource) Redacted() *DataSource {
	if d == nil {
		return nil
	}
	cp := *d
	cp.PasswordCipher = ""
	cp.PasswordPlain = ""
	return &cp
}

// DataSourceInput is the caller-supplied descriptor for AttachDataSource.
// All fields are required.
type DataSourceInput struct {
	Type     string `json:"db_type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// DataSourceCredentials is the privileged, fully reconstituted view of an
// attached data source, including the plaintext password. Only the
// authorized downstream consumer may receive it.
type DataSourceCredentials struct {
	Type     string `json:"db_type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}
