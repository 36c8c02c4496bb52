package auth

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost       = 12
	MinPasswordLength = 6
)

var (
	ErrEmptyPassword = errors.New("password must be a non-empty string")
	ErrWeakPassword  = errors.New("password must be at least 6 characters long")

	bcryptPrefix = regexp.MustCompile(`^\$2[abxy]?\$`)
)

type Hasher struct {
	cost int
}

// NewHasher falls back to DefaultCost when cost is outside bcrypt's range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *Hasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func IsHashed(password string) bool {
	return bcryptPrefix.MatchString(password)
}

func ValidateStrength(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
