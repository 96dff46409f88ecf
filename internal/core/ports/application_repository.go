package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// ApplicationRepository is the application ledger. Create must surface a
// violation of the (student, opportunity) uniqueness constraint as
// domain.ErrAlreadyApplied.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)
	FindByStudentAndOpportunity(ctx context.Context, studentID, opportunityID string) (*domain.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Application, error)
}
