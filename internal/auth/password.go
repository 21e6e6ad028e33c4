package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Supported password hashing schemes.
const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
	SchemePBKDF2   = "pbkdf2-sha256"
)

// ErrSchemeUnavailable is returned when the configured hashing scheme is not
// one this build supports.
var ErrSchemeUnavailable = errors.New("password hashing scheme unavailable")

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	pbkdf2Iter = 100_000
)

// Hasher hashes new passwords with one scheme and verifies digests produced by
// any supported scheme.
type Hasher struct {
	scheme     string
	bcryptCost int
}

// NewHasher returns a Hasher for scheme. An empty scheme selects argon2id.
func NewHasher(scheme string) (*Hasher, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if scheme == "" {
		scheme = SchemeArgon2id
	}
	switch scheme {
	case SchemeArgon2id, SchemeBcrypt, SchemePBKDF2:
	default:
		return nil, fmt.Errorf("%w: %q", ErrSchemeUnavailable, scheme)
	}
	return &Hasher{scheme: scheme, bcryptCost: bcrypt.DefaultCost}, nil
}

func (h *Hasher) Scheme() string { return h.scheme }

// Hash returns the encoded digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	switch h.scheme {
	case SchemeArgon2id:
		return hashArgon2id(password)
	case SchemeBcrypt:
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(b), nil
	case SchemePBKDF2:
		return hashPBKDF2(password)
	}
	return "", fmt.Errorf("%w: %q", ErrSchemeUnavailable, h.scheme)
}

// Verify reports whether password matches digest. Malformed digests never match.
func (h *Hasher) Verify(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return verifyArgon2id(password, digest)
	case strings.HasPrefix(digest, "$pbkdf2-sha256$"):
		return verifyPBKDF2(password, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	return false
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func hashArgon2id(password string) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyArgon2id(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}
	key := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// $pbkdf2-sha256$i=100000$<salt>$<hash>
func hashPBKDF2(password string) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iter, 32, sha256.New)
	return fmt.Sprintf("$pbkdf2-sha256$i=%d$%s$%s", pbkdf2Iter,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyPBKDF2(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 5 {
		return false
	}
	var iter int
	if _, err := fmt.Sscanf(parts[2], "i=%d", &iter); err != nil || iter <= 0 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, iter, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
