package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// DefaultTokenTTL is the validity window of an identity token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// identityClaims is the token payload: subject id, role and email plus the
// registered iat/exp claims. Nothing else is carried.
type identityClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. It is stateless:
// a token stays valid for its whole window even if the account changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(id domain.Identity) (string, error) {
	if id.SubjectID == "" || !id.Role.Valid() {
		return "", fmt.Errorf("issue token: incomplete identity")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	claims := identityClaims{
		Role:  id.Role.String(),
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.SubjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(token string) (domain.Identity, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return domain.Identity{SubjectID: claims.Subject, Role: role, Email: claims.Email}, nil
}
