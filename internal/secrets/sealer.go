// Package secrets seals small user secrets, such as model API keys, for
// storage at rest using XChaCha20-Poly1305.
package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// MinKeyLength is the shortest accepted master key, in bytes.
const MinKeyLength = 32

var (
	// ErrKeyTooShort is returned when the master key is shorter than MinKeyLength.
	ErrKeyTooShort = errors.New("encryption key must be at least 32 bytes")

	// ErrDecryptionFailed is returned when a sealed value is corrupt, truncated,
	// bound to a different owner, or was sealed with a different key.
	ErrDecryptionFailed = errors.New("failed to decrypt sealed value")
)

const hkdfInfo = "flashdeck credential sealing v1"

// Sealer encrypts and authenticates secrets. Each sealed value is bound to a
// string (typically the owning user's ID) so it cannot be swapped
// between rows. It is safe for concurrent use.
type Sealer struct {
	aead   cipher.AEAD
	random io.Reader
}

// NewSealer derives a 256-bit key from masterKey with HKDF-SHA256.
func NewSealer(masterKey string) (*Sealer, error) {
	if len(masterKey) < MinKeyLength {
		return nil, ErrKeyTooShort
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(masterKey), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &Sealer{aead: aead, random: rand.Reader}, nil
}

// Seal encrypts plaintext bound to boundTo. The output is nonce || ciphertext.
func (s *Sealer) Seal(plaintext, boundTo string) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(s.random, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(boundTo)), nil
}

// Open decrypts a value produced by Seal with the same boundTo value.
func (s *Sealer) Open(sealed []byte, boundTo string) (string, error) {
	if len(sealed) < s.aead.NonceSize()+s.aead.Overhead() {
		return "", ErrDecryptionFailed
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(boundTo))
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
