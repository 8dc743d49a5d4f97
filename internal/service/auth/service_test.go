package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/pkg/auth"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
	"github.com/pediclinic/booking-api/pkg/security"
)

type fakeClientRepo struct {
	byEmail map[string]*model.Client
}

func (f *fakeClientRepo) Create(context.Context, *model.Client) error { return nil }

func (f *fakeClientRepo) Get(context.Context, uuid.UUID) (*model.Client, error) {
	return nil, apperrors.NotFound("client", nil)
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*model.Client, error) {
	if c, ok := f.byEmail[email]; ok {
		return c, nil
	}
	return nil, apperrors.NotFound("client", nil)
}

func newTestService(t *testing.T) (*Service, *model.Client) {
	t.Helper()

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correcthorse")
	require.NoError(t, err)

	client := &model.Client{
		Email:        "familia@example.com",
		Name:         "Familia García",
		PasswordHash: hash,
		Active:       true,
	}
	client.ID = uuid.New()

	repo := &fakeClientRepo{byEmail: map[string]*model.Client{client.Email: client}}
	jwtService := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	return NewService(repo, jwtService, hasher), client
}

func TestLogin(t *testing.T) {
	svc, client := newTestService(t)

	token, err := svc.Login(context.Background(), client.Email, "correcthorse")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, client := newTestService(t)

	_, err := svc.Login(context.Background(), client.Email, "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "correcthorse")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, client := newTestService(t)
	client.Active = false

	_, err := svc.Login(context.Background(), client.Email, "correcthorse")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
}
