package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/datamind-io/authcore/internal/common"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"
	email := "a@x.com"

	tok, err := Issue(userID, email, secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := Verify(tok, secret)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != userID {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, userID)
	}
	if claims.Email != email {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, email)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected iat and exp to be set, got %+v", claims)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatalf("exp %v not after iat %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Issue("u1", "u1@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Verify(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("u2", "u2@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Verify(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := Issue("u3", "u3@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// flip a byte in the payload segment
	b := []byte(tok)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}

	_, err = Verify(string(b), secret)
	if err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := Verify("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifySignature_AcceptsExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := Issue("u4", "u4@x.com", secret, -1*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := VerifySignature(tok, secret)
	if err != nil {
		t.Fatalf("VerifySignature error: %v", err)
	}
	if claims.Subject != "u4" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
}

func TestVerifySignature_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("u5", "u5@x.com", []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = VerifySignature(tok, []byte("wrong"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
