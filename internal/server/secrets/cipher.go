// Package secrets implements the symmetric cipher protecting attached
// data-source passwords. The key is derived once at construction from
// whatever string the deployment configures: SHA-256 of the string becomes
// the AES-256 key, so any passphrase works and the derivation is stable
// across restarts. An absent key is a valid (degraded) configuration, not
// an error; the decision is made once and exposed via Available.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/datamind-io/authcore/internal/common"
)

// Cipher encrypts and decrypts single string values using AES-256-GCM.
// The zero-value-like unconfigured state is produced by New("").
type Cipher struct {
	aead cipher.AEAD
}

// New derives the AES key from the configured key string and returns a
// ready cipher. An empty key string returns an unconfigured cipher whose
// Encrypt/Decrypt fail with common.ErrCipherNotConfigured.
func New(key string) (*Cipher, error) {
	if key == "" {
		return &Cipher{}, nil
	}

	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Available reports whether an encryption key was configured.
func (c *Cipher) Available() bool {
	return c.aead != nil
}

// Encrypt seals the plaintext and returns a base64url envelope of
// nonce || ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if !c.Available() {
		return "", common.ErrCipherNotConfigured
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt. Values not produced by
// this cipher and key (tampered, corrupted, wrong key) fail with
// common.ErrInvalidCiphertext and never yield partial plaintext.
func (c *Cipher) Decrypt(value string) (string, error) {
	if !c.Available() {
		return "", common.ErrCipherNotConfigured
	}

	sealed, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", common.ErrInvalidCiphertext
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", common.ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", common.ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
