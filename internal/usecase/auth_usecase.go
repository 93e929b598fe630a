package usecase

import (
	"context"
	"errors"
	"time"

	"job-authenticity/internal/config"
	"job-authenticity/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

type AuthUsecase interface {
	// IssueToken exchanges the service-account credentials for a JWT.
	IssueToken(ctx context.Context, clientID, clientSecret string) (string, time.Time, error)
}

type Auth struct {
	cfg config.AuthConfig
	jwt jwt.Service
}

func NewAuthUsecase(cfg config.AuthConfig, jwtSvc jwt.Service) *Auth {
	return &Auth{cfg: cfg, jwt: jwtSvc}
}

func (a *Auth) IssueToken(_ context.Context, clientID, clientSecret string) (string, time.Time, error) {
	if clientID == "" || clientSecret == "" {
		return "", time.Time{}, ErrUnauthorized
	}
	if clientID != a.cfg.ClientID {
		return "", time.Time{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.cfg.ClientSecretHash), []byte(clientSecret)); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}

	token, exp, err := a.jwt.GenerateToken(clientID)
	if err != nil {
		return "", time.Time{}, ErrInternal
	}
	return token, exp, nil
}
