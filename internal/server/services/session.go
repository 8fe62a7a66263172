// Package services contains server-side business logic. This file implements
// SessionService, which composes the credential store, token authority,
// session store, and secret cipher into the public auth operations:
// signup, login, attach-data-source, context fetch, raw credential
// retrieval, logout, and session verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/datamind-io/authcore/internal/common"
	"github.com/datamind-io/authcore/internal/logging"
	"github.com/datamind-io/authcore/internal/server/auth"
	"github.com/datamind-io/authcore/internal/server/config"
	"github.com/datamind-io/authcore/internal/server/models"
	"github.com/datamind-io/authcore/internal/server/repositories/repomanager"
	"github.com/datamind-io/authcore/internal/server/secrets"
	"github.com/datamind-io/authcore/internal/server/sessions"
)

// SessionService is the only layer allowed to translate internal store and
// cipher errors into the public taxonomy. The session-store backend and the
// cipher availability are decided once at construction and never revisited
// per call.
type SessionService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	store     sessions.Store
	cipher    *secrets.Cipher
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration

	// dummyHash burns a bcrypt verification when the account does not
	// exist, so login latency does not reveal which check failed.
	dummyHash []byte
}

// NewSessionService constructs a SessionService from its collaborators and
// server config.
func NewSessionService(db *sql.DB, rm repomanager.RepositoryManager, store sessions.Store, cipher *secrets.Cipher, cfg *config.Config, logger logging.Logger) *SessionService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	return &SessionService{
		db:        db,
		repos:     rm,
		store:     store,
		cipher:    cipher,
		logger:    logger.With("module", "session_service"),
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		dummyHash: dummy,
	}
}

// SignUp creates a new account and returns its generated user id.
// Input is validated here, not in the store.
func (s *SessionService) SignUp(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}

	repo := s.repos.Users(s.db)
	if _, err := repo.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "account created", "user_id", user.ID)
	return user.ID, nil
}

// LogIn verifies credentials, issues a session token, and seeds a fresh
// session context in the store. Lookup and verification failures both
// surface as the single common.ErrInvalidCredentials.
func (s *SessionService) LogIn(ctx context.Context, email, password string) (string, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.Issue(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	sc := &models.SessionContext{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, token, sc, s.tokenTTL); err != nil {
		return "", err
	}

	return token, nil
}

// AttachDataSource validates and stores data-source connection metadata on
// the session. The password is encrypted when a cipher key is configured;
// otherwise it is stored in the clear (degraded mode, never a hard failure
// for this operation). A failed attach leaves the prior context untouched.
func (s *SessionService) AttachDataSource(ctx context.Context, token string, in models.DataSourceInput) error {
	if _, err := auth.Verify(token, s.jwtSecret); err != nil {
		s.logger.Debug(ctx, "attach rejected", "cause", err.Error())
		return common.ErrUnauthorized
	}

	if in.Type == "" || in.Host == "" || in.Port <= 0 || in.Username == "" || in.Password == "" || in.Database == "" {
		return fmt.Errorf("%w: data source descriptor is missing required fields", common.ErrInvalidInput)
	}

	ds := &models.DataSource{
		Type:     in.Type,
		Host:     in.Host,
		Port:     in.Port,
		Username: in.Username,
		Database: in.Database,
		DSN:      fmt.Sprintf("%s://%s@%s:%d/%s", in.Type, in.Username, in.Host, in.Port, in.Database),
	}

	if s.cipher.Available() {
		enc, err := s.cipher.Encrypt(in.Password)
		if err != nil {
			return fmt.Errorf("encrypting data source password: %w", err)
		}
		ds.PasswordCipher = enc
	} else {
		ds.PasswordPlain = in.Password
	}

	return s.store.Mutate(ctx, token, func(sc *models.SessionContext) error {
		sc.ActiveDB = ds
		return nil
	})
}

// Context returns the session context with the attached data-source
// descriptor fully redacted: neither plaintext nor ciphertext passwords
// ever leave through this path.
func (s *SessionService) Context(ctx context.Context, token string) (*models.SessionContext, error) {
	if _, err := auth.Verify(token, s.jwtSecret); err != nil {
		return nil, err
	}

	sc, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	sc.ActiveDB = sc.ActiveDB.Redacted()
	return sc, nil
}

// RawCredentials reconstitutes the plaintext data-source credentials for an
// explicitly authorized downstream consumer. It is deliberately not wired
// into any generic read path. Unreadable ciphertext fails with
// common.ErrDecryptionFailed; it never degrades to returning ciphertext as
// if it were the password.
func (s *SessionService) RawCredentials(ctx context.Context, token string) (*models.DataSourceCredentials, error) {
	if _, err := auth.Verify(token, s.jwtSecret); err != nil {
		s.logger.Debug(ctx, "credential retrieval rejected", "cause", err.Error())
		return nil, common.ErrUnauthorized
	}

	sc, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	db := sc.ActiveDB
	if db == nil {
		return nil, common.ErrNoDataSource
	}

	password := db.PasswordPlain
	if db.PasswordCipher != "" {
		password, err = s.cipher.Decrypt(db.PasswordCipher)
		if err != nil {
			s.logger.Error(ctx, "stored password unreadable", "user_id", sc.UserID, "cause", err.Error())
			return nil, common.ErrDecryptionFailed
		}
	}

	return &models.DataSourceCredentials{
		Type:     db.Type,
		Host:     db.Host,
		Port:     db.Port,
		Username: db.Username,
		Password: password,
		Database: db.Database,
	}, nil
}

// LogOut deletes the session. Only the token's signature is checked, so an
// expired-but-authentic token can still log out. Idempotent: logging out a
// token with no session succeeds.
func (s *SessionService) LogOut(ctx context.Context, token string) error {
	if _, err := auth.VerifySignature(token, s.jwtSecret); err != nil {
		s.logger.Debug(ctx, "logout with unverifiable token", "cause", err.Error())
	}
	return s.store.Delete(ctx, token)
}

// VerifySession is the authorization gate for the other engines: token
// signature + expiry plus a session-store lookup. Every auth-class failure
// collapses into common.ErrUnauthorized so callers cannot distinguish a bad
// signature from an expired token from a missing session; the cause goes to
// the logs only. Storage outages keep their own class so callers may retry.
func (s *SessionService) VerifySession(ctx context.Context, token string) (*models.SessionContext, error) {
	if _, err := auth.Verify(token, s.jwtSecret); err != nil {
		s.logger.Debug(ctx, "session verification failed", "cause", err.Error())
		return nil, common.ErrUnauthorized
	}

	sc, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			return nil, err
		}
		s.logger.Debug(ctx, "session verification failed", "cause", err.Error())
		return nil, common.ErrUnauthorized
	}

	sc.ActiveDB = sc.ActiveDB.Redacted()
	return sc, nil
}

// RecordQuery stamps the session's last-query marker on behalf of the
// downstream query engine. This service only carries the value.
func (s *SessionService) RecordQuery(ctx context.Context, token, query string) error {
	if _, err := auth.Verify(token, s.jwtSecret); err != nil {
		return common.ErrUnauthorized
	}

	return s.store.Mutate(ctx, token, func(sc *models.SessionContext) error {
		sc.LastQuery = query
		return nil
	})
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is missing or malformed", common.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrInvalidInput)
	}
	return nil
}
