package services

import (
	"context"

	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
)

// TokenIssuer signs an access token for an email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AuthService struct {
	users  *repositories.UserRepository
	issuer TokenIssuer
}

func NewAuthService(users *repositories.UserRepository, issuer TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// IssueToken signs a token for email when a user with that email exists.
// An empty or unknown email is Forbidden.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperr.Forbidden("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		logger.WithCtx(ctx).Info("auth: token refused for unknown email", "email", email)
		return "", apperr.Forbidden("unknown user")
	}

	token, err := s.issuer.Issue(email)
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindInternal, "issue token")
	}
	return token, nil
}
