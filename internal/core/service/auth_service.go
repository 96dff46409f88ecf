package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

// passwordCost matches the cost the existing account data was hashed with.
const passwordCost = 10

// AuthService implements registration and login across the three role partitions.
type AuthService struct {
	students  ports.StudentRepository
	companies ports.CompanyRepository
	tpos      ports.TPORepository
	tokens    ports.TokenIssuer
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	students ports.StudentRepository,
	companies ports.CompanyRepository,
	tpos ports.TPORepository,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		students:  students,
		companies: companies,
		tpos:      tpos,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.Principal, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidationError("name, email, password, type are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created domain.Principal
	switch in.Role {
	case domain.RoleStudent:
		if _, err := s.students.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		created, err = s.students.Create(ctx, &domain.Student{Account: account})
	case domain.RoleRecruiter:
		if _, err := s.companies.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		created, err = s.companies.Create(ctx, &domain.Company{Account: account})
	case domain.RoleTPO:
		if _, err := s.tpos.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		created, err = s.tpos.Create(ctx, &domain.TPO{Account: account})
	default:
		return nil, domain.NewValidationError("invalid type")
	}
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(in.Role.String()).Inc()
	s.log.Info().
		Str("role", in.Role.String()).
		Str("account_id", created.Base().ID).
		Msg("account registered")

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("email, password and type are required")
	}

	principal, err := s.findAccount(ctx, in.Role, email)
	if err != nil {
		// An unknown email and a wrong role partition look identical to the caller.
		if errors.Is(err, domain.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues(in.Role.String(), "rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	account := principal.Base()
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues(in.Role.String(), "rejected").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{SubjectID: account.ID, Role: in.Role, Email: account.Email})
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(in.Role.String(), "ok").Inc()
	return &ports.LoginResult{Token: token, User: principal}, nil
}

func (s *AuthService) findAccount(ctx context.Context, role domain.Role, email string) (domain.Principal, error) {
	switch role {
	case domain.RoleStudent:
		return s.students.FindByEmail(ctx, email)
	case domain.RoleRecruiter:
		return s.companies.FindByEmail(ctx, email)
	case domain.RoleTPO:
		return s.tpos.FindByEmail(ctx, email)
	default:
		return nil, domain.NewValidationError("invalid type")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
