package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"
)

// testKey returns a fixed 32-byte key for tests.
func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err, "failed to decode test key")
	return key
}

func TestNewPasswordCipher(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		c, err := NewPasswordCipher(testKey(t))

		assert.NoError(t, err, "failed to create cipher")
		assert.NotNil(t, c, "cipher is nil")
	})

	t.Run("invalid key length", func(t *testing.T) {
		c, err := NewPasswordCipher([]byte("short"))

		assert.Error(t, err, "should reject a short key")
		assert.Nil(t, c, "cipher should be nil")
	})
}

func TestPasswordCipher_RoundTrip(t *testing.T) {
	c, err := NewPasswordCipher(testKey(t))
	require.NoError(t, err, "failed to create cipher")

	plaintexts := []string{
		"password123",
		"",
		"パスワード",
		"with spaces and symbols !@#$%^&*()",
	}

	for _, plaintext := range plaintexts {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err, "failed to encrypt %q", plaintext)
		assert.NotEqual(t, plaintext, encrypted, "ciphertext must differ from plaintext")

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err, "failed to decrypt %q", plaintext)
		assert.Equal(t, plaintext, decrypted, "round trip must restore the plaintext byte-for-byte")
	}
}

func TestPasswordCipher_RandomNonce(t *testing.T) {
	c, err := NewPasswordCipher(testKey(t))
	require.NoError(t, err, "failed to create cipher")

	// Equal plaintexts must not produce equal ciphertexts
	first, err := c.Encrypt("password123")
	require.NoError(t, err)
	second, err := c.Encrypt("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "nonce must be random per encryption")
}

func TestPasswordCipher_Decrypt_Failures(t *testing.T) {
	c, err := NewPasswordCipher(testKey(t))
	require.NoError(t, err, "failed to create cipher")

	t.Run("wrong key", func(t *testing.T) {
		otherKey := make([]byte, chacha20poly1305.KeySize)
		otherKey[0] = 0xff
		other, err := NewPasswordCipher(otherKey)
		require.NoError(t, err, "failed to create second cipher")

		encrypted, err := c.Encrypt("password123")
		require.NoError(t, err)

		_, err = other.Decrypt(encrypted)
		assert.ErrorIs(t, err, ErrInvalidCiphertext, "decryption with another key must fail")
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := c.Decrypt("%%%not-base64%%%")
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := c.Decrypt("AAAA")
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		encrypted, err := c.Encrypt("password123")
		require.NoError(t, err)

		tampered := []byte(encrypted)
		tampered[len(tampered)-5] ^= 'x'

		_, err = c.Decrypt(string(tampered))
		assert.Error(t, err, "tampered ciphertext must not decrypt")
	})
}

func TestLoadKeyFromEnv(t *testing.T) {
	t.Run("hex key from environment", func(t *testing.T) {
		t.Setenv("PASSWORD_KEY", "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")

		key, err := LoadKeyFromEnv()

		assert.NoError(t, err, "failed to load key")
		assert.Equal(t, testKey(t), key, "key does not match")
	})

	t.Run("unset variable falls back to ephemeral key", func(t *testing.T) {
		t.Setenv("PASSWORD_KEY", "")

		key, err := LoadKeyFromEnv()

		assert.NoError(t, err, "ephemeral fallback should not fail")
		assert.Len(t, key, chacha20poly1305.KeySize, "ephemeral key has wrong size")
	})

	t.Run("invalid hex is rejected", func(t *testing.T) {
		t.Setenv("PASSWORD_KEY", "zz not hex zz")

		_, err := LoadKeyFromEnv()

		assert.Error(t, err, "should reject invalid hex")
	})

	t.Run("wrong length is rejected", func(t *testing.T) {
		t.Setenv("PASSWORD_KEY", "0001")

		_, err := LoadKeyFromEnv()

		assert.Error(t, err, "should reject a short key")
	})
}
