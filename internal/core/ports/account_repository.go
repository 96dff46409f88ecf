package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// StudentFilter narrows student listings.
type StudentFilter struct {
	VerifiedOnly bool
}

// StudentRepository persists the student partition of the credential store.
// Create returns domain.ErrEmailTaken when the email already exists.
type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) (*domain.Student, error)
	FindByEmail(ctx context.Context, email string) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Student, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Student, error)
}

// CompanyRepository persists the company partition of the credential store.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByEmail(ctx context.Context, email string) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
}

// TPORepository persists the TPO partition of the credential store.
type TPORepository interface {
	Create(ctx context.Context, t *domain.TPO) (*domain.TPO, error)
	FindByEmail(ctx context.Context, email string) (*domain.TPO, error)
}
