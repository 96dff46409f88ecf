package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// TokenIssuer mints identity tokens at login.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier checks a token and returns the identity it asserts. Every
// failure is reported as domain.ErrInvalidToken (wrapped with the cause).
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult carries the signed token and the account without its password.
type LoginResult struct {
	Token string
	User  domain.Principal
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (domain.Principal, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}
