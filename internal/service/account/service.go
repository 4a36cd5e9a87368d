package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"budgetthreads/internal/domain"
	userrepo "budgetthreads/internal/repository/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the bearer token is missing or unknown.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned when an authenticated user lacks admin rights.
	ErrForbidden = errors.New("forbidden")
)

// AdminPredicate decides whether a user may use admin endpoints.
type AdminPredicate func(*domain.User) bool

// AdminEmail returns a predicate matching one email, case-insensitively.
func AdminEmail(email string) AdminPredicate {
	email = strings.TrimSpace(email)
	return func(u *domain.User) bool {
		return u != nil && email != "" && strings.EqualFold(u.Email, email)
	}
}

// Service handles registration, login and token lookup.
type Service struct {
	repo        userrepo.Repository
	isAdmin     AdminPredicate
	passwordMin int
	now         func() time.Time
}

func New(repo userrepo.Repository, isAdmin AdminPredicate) *Service {
	if isAdmin == nil {
		isAdmin = func(*domain.User) bool { return false }
	}
	return &Service{
		repo:        repo,
		isAdmin:     isAdmin,
		passwordMin: 6,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the account and issues its first token. A duplicate email
// yields domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}
	if len(in.Password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Token:        token,
		CreatedAt:    s.now(),
	})
}

// Login checks credentials and rotates the user's token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing email or password", domain.ErrInvalidInput)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetToken(ctx, u.ID, token); err != nil {
		return nil, err
	}
	u.Token = token
	return u, nil
}

// LookupByToken returns the user bound to a bearer token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) IsAdmin(u *domain.User) bool {
	return s.isAdmin(u)
}

// RequireAdmin resolves the token and checks the admin predicate.
func (s *Service) RequireAdmin(ctx context.Context, token string) (*domain.User, error) {
	u, err := s.LookupByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !s.isAdmin(u) {
		return nil, ErrForbidden
	}
	return u, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
