package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// OpportunityRepository persists job postings. Owner-scoped methods match on
// both id and company so that a posting owned by someone else looks absent.
type OpportunityRepository interface {
	Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error)
	FindByID(ctx context.Context, id string) (*domain.Opportunity, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Opportunity, error)
	FindOwned(ctx context.Context, companyID, id string) (*domain.Opportunity, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Opportunity, error)
	List(ctx context.Context) ([]domain.Opportunity, error)
	UpdateOwned(ctx context.Context, companyID, id string, update domain.OpportunityUpdate) (*domain.Opportunity, error)
	DeleteOwned(ctx context.Context, companyID, id string) error
}
