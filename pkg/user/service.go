package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"storefront/pkg/auth"
	"storefront/pkg/ratelimit"
	"storefront/pkg/sequence"
	"storefront/pkg/session"
	"storefront/pkg/validation"
)

const (
	msgAllFieldsRequired   = "All fields are required"
	msgInvalidEmail        = "Invalid email format"
	msgPasswordTooShort    = "Password must be at least 6 characters long"
	msgCredentialsRequired = "Email and password are required"

	ipKeyPrefix = "ip:"
)

type ServiceInterface interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput, clientIP string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetByID(ctx context.Context, id int64) (*User, error)
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"email"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Service struct {
	Repo     Repository
	Sessions session.Repository
	Tokens   *auth.TokenManager
	Hasher   *auth.Hasher
	Limiter  ratelimit.Limiter
	IDs      sequence.Generator

	newSessionID func() string
	now          func() time.Time
}

func NewService(
	repo Repository,
	sessions session.Repository,
	tokens *auth.TokenManager,
	hasher *auth.Hasher,
	limiter ratelimit.Limiter,
	ids sequence.Generator,
) *Service {
	return &Service{
		Repo:         repo,
		Sessions:     sessions,
		Tokens:       tokens,
		Hasher:       hasher,
		Limiter:      limiter,
		IDs:          ids,
		newSessionID: uuid.NewString,
		now:          time.Now,
	}
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = NormalizeEmail(in.Email)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, validation.New("", msgAllFieldsRequired)
	}
	err := validation.Check(in, validation.Messages{"Email": msgInvalidEmail})
	if err != nil {
		return nil, err
	}
	if auth.ValidateStrength(in.Password) != nil {
		return nil, validation.New("Password", msgPasswordTooShort)
	}

	_, err = s.Repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.IDs.Next(ctx, sequence.Users)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := &User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hashed,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.startSession(ctx, u)
}

// Login throttles by email and by client IP. A successful login clears both.
func (s *Service) Login(ctx context.Context, in LoginInput, clientIP string) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, validation.New("", msgCredentialsRequired)
	}

	// the ip goes first so a throttled address cannot spend an email's attempts
	var keys []string
	if clientIP != "" {
		keys = append(keys, ipKeyPrefix+clientIP)
	}
	keys = append(keys, email)
	for _, key := range keys {
		ok, err := s.Limiter.Allow(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrTooManyAttempts
		}
	}

	u, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.Hasher.Verify(in.Password, u.Password) {
		return nil, ErrInvalidCredentials
	}

	for _, key := range keys {
		if err := s.Limiter.Reset(ctx, key); err != nil {
			return nil, err
		}
	}

	return s.startSession(ctx, u)
}

func (s *Service) startSession(ctx context.Context, u *User) (*AuthResult, error) {
	sessionID := s.newSessionID()
	if err := s.Sessions.Create(ctx, u.ID, sessionID, s.Tokens.TTL()); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.Tokens.Issue(auth.Subject{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, sessionID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Invalidate(ctx, sessionID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *Service) SetRole(ctx context.Context, email, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return ErrInvalidRole
	}
	return s.Repo.SetRole(ctx, NormalizeEmail(email), role)
}

// RevokeSessions signs the user out of every device.
func (s *Service) RevokeSessions(ctx context.Context, email string) error {
	if s.Sessions == nil {
		return ErrNoSessionStore
	}
	u, err := s.Repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	return s.Sessions.InvalidateUser(ctx, u.ID)
}

func (s *Service) BackfillRoles(ctx context.Context) (int64, error) {
	return s.Repo.BackfillRoles(ctx)
}

// RehashPasswords bcrypt-hashes every stored password that is still plain
// text. It returns how many users were updated.
func (s *Service) RehashPasswords(ctx context.Context) (int, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, u := range users {
		if u.Password == "" || auth.IsHashed(u.Password) {
			continue
		}
		hashed, err := s.Hasher.Hash(u.Password)
		if err != nil {
			return fixed, fmt.Errorf("hash password of user %d: %w", u.ID, err)
		}
		if err := s.Repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}
