package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/medrec/medrec/internal/platform/apperr"
	"github.com/medrec/medrec/internal/platform/auth"
)

type Service struct {
	users      UserRepository
	tokens     TokenRepository
	issuer     *auth.Issuer
	bcryptCost int
}

func NewService(users UserRepository, tokens TokenRepository, issuer *auth.Issuer, bcryptCost int) *Service {
	return &Service{users: users, tokens: tokens, issuer: issuer, bcryptCost: bcryptCost}
}

// Register creates a new identity with a bcrypt-hashed password. A taken
// username surfaces as a conflict.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("username already taken: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns an access/refresh pair. The failure
// is identical whether the username is unknown or the password mismatches.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrAuth)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrAuth)
	}

	access, err := s.issuer.NewAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, auth.HashRefresh(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}

	return &TokenPair{Access: access.Token, Refresh: refresh.Raw}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	userID, err := s.tokens.ValidateRefresh(ctx, auth.HashRefresh(rawRefresh))
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", apperr.ErrAuth)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token: %w", apperr.ErrAuth)
	}

	access, err := s.issuer.NewAccessToken(u.ID, u.Username)
	if err != nil {
		return "", err
	}
	return access.Token, nil
}
