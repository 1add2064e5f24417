package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/pkg/auth"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[uuid.UUID]*model.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return errors.New("not found")
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	hasher := security.NewBcryptHasher(4)
	return NewService(users, jwtSvc, hasher), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "ana@example.com",
		Password: "correct-horse",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, model.RoleClient, tokens.User.Role)
	assert.Empty(t, tokens.User.PasswordHash)

	logged, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &model.RegisterRequest{Email: "dup@example.com", Password: "password-1", Name: "Dup"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "bob@example.com", Password: "right-password", Name: "Bob",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email: "bob@example.com", Password: "wrong-password",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, users := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "carl@example.com", Password: "right-password", Name: "Carl",
	})
	require.NoError(t, err)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err = svc.Login(ctx, &model.LoginRequest{
			Email: "carl@example.com", Password: "wrong-password",
		})
		require.Error(t, err)
	}

	// Even the correct password is rejected while locked.
	_, err = svc.Login(ctx, &model.LoginRequest{
		Email: "carl@example.com", Password: "right-password",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	// Lock expires after the window.
	u := users.byEmail["carl@example.com"]
	u.LastLoginAttempt = time.Now().Add(-lockoutDuration - time.Minute)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email: "carl@example.com", Password: "right-password",
	})
	assert.NoError(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &model.RegisterRequest{
		Email: "dora@example.com", Password: "password-1", Name: "Dora",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, &model.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, &model.RefreshTokenRequest{
		RefreshToken: "garbage",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
