package auth

import (
	"context"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
	"github.com/pediclinic/booking-api/pkg/auth"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
	"github.com/pediclinic/booking-api/pkg/security"
)

// Service authenticates responsible parties and issues session tokens.
type Service struct {
	clients repository.ClientRepository
	jwt     *auth.JWTService
	hasher  security.PasswordHasher
}

func NewService(clients repository.ClientRepository, jwt *auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{clients: clients, jwt: jwt, hasher: hasher}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if !client.Active {
		return nil, apperrors.Unauthorized(nil)
	}

	if err := s.hasher.Compare(client.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwt.GenerateToken(client.ID, client.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwt.Expiry().Seconds()),
	}, nil
}
