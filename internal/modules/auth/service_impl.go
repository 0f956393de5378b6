package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

const tokenTTL = 24 * time.Hour

type service struct {
	repo   Repository
	secret []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(repo Repository, secret []byte) Service {
	return &service{repo: repo, secret: secret}
}

func (s *service) Register(ctx context.Context, email, password string) (string, error) {
	if email == "" || len(password) < 8 {
		return "", apperr.InvalidArgument("email and a password of at least 8 characters are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	c := &Credential{
		Principal:    identity.Principal(uuid.NewString()),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return "", err
	}
	return s.sign(c.Principal)
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return "", apperr.Unauthorized("invalid credentials")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	return s.sign(c.Principal)
}

func (s *service) sign(principal identity.Principal) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   string(principal),
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
