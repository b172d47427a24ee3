// Package crypto provides symmetric encryption for password values at rest.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidCiphertext is returned when a value cannot be decrypted,
// either because it is malformed or was encrypted with a different key.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// PasswordCipher encrypts and decrypts password values with ChaCha20-Poly1305.
// The key is process-wide state held for the process lifetime.
type PasswordCipher struct {
	aead cipher.AEAD
}

// NewPasswordCipher creates a PasswordCipher from a 32-byte key.
func NewPasswordCipher(key []byte) (*PasswordCipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	return &PasswordCipher{aead: aead}, nil
}

// LoadKeyFromEnv reads the encryption key from the PASSWORD_KEY environment
// variable (hex-encoded, 32 bytes). When the variable is unset it falls back
// to a fresh random key; values encrypted with an ephemeral key become
// unreadable after a process restart, so the fallback logs a warning.
func LoadKeyFromEnv() ([]byte, error) {
	raw := os.Getenv("PASSWORD_KEY")
	if raw == "" {
		key := make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
		}
		slog.Warn("PASSWORD_KEY is not set. Using an ephemeral key; stored passwords will be unreadable after restart.")
		return key, nil
	}

	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("PASSWORD_KEY is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("PASSWORD_KEY must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return key, nil
}

// Encrypt seals the plaintext with a random nonce and returns
// base64(nonce || ciphertext).
func (c *PasswordCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt, returning the original plaintext byte-for-byte.
func (c *PasswordCipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, box := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
