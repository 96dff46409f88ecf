package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// TPOService holds the cross-account operations of the placement office.
type TPOService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	ListOpportunities(ctx context.Context) ([]domain.Opportunity, error)
	VerifyStudent(ctx context.Context, studentID string) (*domain.Student, error)
	GetStudent(ctx context.Context, studentID string) (*domain.Student, error)
}
