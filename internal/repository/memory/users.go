package memory

import (
	"context"
	"strings"

	"budgetthreads/internal/domain"
)

type Users struct {
	s *Store
}

func (u *Users) Create(_ context.Context, user domain.User) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrAlreadyExists
		}
	}
	u.s.users = append(u.s.users, user)
	return &user, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return u.find(func(x domain.User) bool { return strings.EqualFold(x.Email, email) })
}

func (u *Users) GetByToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}
	return u.find(func(x domain.User) bool { return x.Token == token })
}

func (u *Users) SetToken(_ context.Context, id, token string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for i := range u.s.users {
		if u.s.users[i].ID == id {
			u.s.users[i].Token = token
			return nil
		}
	}
	return domain.ErrNotFound
}

func (u *Users) find(match func(domain.User) bool) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if match(user) {
			out := user
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}
