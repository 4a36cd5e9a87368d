package account

import (
	"context"
	"errors"
	"testing"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/repository/memory"
	userrepo "budgetthreads/internal/repository/user"
	"budgetthreads/internal/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return New(memory.New().Users(), AdminEmail("Admin@BudgetThreads.com"))
}

func TestRegister(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEmpty(t, u.Token)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "ASHA@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Register(ctx, RegisterInput{Email: "x@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Register(ctx, RegisterInput{Name: "x", Email: "x@example.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_RotatesToken(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "asha@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := svc.Login(ctx, "Asha@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token, u.Token)

	_, err = svc.LookupByToken(ctx, registered.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	me, err := svc.LookupByToken(ctx, u.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, me.ID)
}

func TestRequireAdmin(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	admin, err := svc.Register(ctx, RegisterInput{Name: "Admin", Email: "admin@budgetthreads.com", Password: "secret1"})
	require.NoError(t, err)
	user, err := svc.Register(ctx, RegisterInput{Name: "User", Email: "user@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.RequireAdmin(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.RequireAdmin(ctx, user.Token)
	assert.ErrorIs(t, err, ErrForbidden)
	got, err := svc.RequireAdmin(ctx, admin.Token)
	require.NoError(t, err)
	assert.True(t, svc.IsAdmin(got))
}

func TestAdminPredicateIsInjectable(t *testing.T) {
	svc := New(memory.New().Users(), func(u *domain.User) bool { return u.Name == "root" })
	assert.True(t, svc.IsAdmin(&domain.User{Name: "root"}))
	assert.False(t, svc.IsAdmin(&domain.User{Name: "admin", Email: "admin@budgetthreads.com"}))
	assert.False(t, AdminEmail("")(&domain.User{}))
	assert.False(t, New(nil, nil).IsAdmin(&domain.User{}))
}

type unreachableUsers struct{}

func (unreachableUsers) Create(context.Context, domain.User) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) GetByToken(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
func (unreachableUsers) SetToken(context.Context, string, string) error {
	return errors.New("connection refused")
}

func TestRegister_DurableOutageIssuesNoAdminToken(t *testing.T) {
	store := memory.New()
	repo := userrepo.NewResilient(unreachableUsers{}, store.Users(), resilience.NewPolicy("users", true, resilience.Settings{}, nil))
	svc := New(repo, AdminEmail("admin@budgetthreads.com"))
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Mallory", Email: "admin@budgetthreads.com", Password: "secret1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Nil(t, u)

	_, err = svc.Login(ctx, "admin@budgetthreads.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = svc.RequireAdmin(ctx, "any-token")
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = store.Users().GetByEmail(ctx, "admin@budgetthreads.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
