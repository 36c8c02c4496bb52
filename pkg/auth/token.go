package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"storefront/pkg/claims"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	bearerPrefix    = "Bearer "
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSubject    = errors.New("invalid user data for token generation")
)

// Subject is the identity encoded into a token.
type Subject struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an HS256 token for subject bound to sessionID.
func (m *TokenManager) Issue(subject Subject, sessionID string) (string, error) {
	if subject.UserID == 0 || subject.Email == "" {
		return "", ErrNoSubject
	}

	now := m.now().UTC()
	c := &claims.Claims{
		UserID:    subject.UserID,
		Email:     subject.Email,
		FirstName: subject.FirstName,
		LastName:  subject.LastName,
		StandardClaims: jwt.StandardClaims{
			Id:        sessionID,
			Subject:   strconv.FormatInt(subject.UserID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token signing: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm and expiry.
func (m *TokenManager) Parse(token string) (*claims.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	c := &claims.Claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || c.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return c, nil
}

// TokenFromHeader extracts the token of a "Bearer <token>" Authorization header.
func TokenFromHeader(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
