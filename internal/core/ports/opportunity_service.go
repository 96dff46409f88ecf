package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

type OpportunityService interface {
	Create(ctx context.Context, companyID string, o domain.Opportunity) (*domain.Opportunity, error)
	ListForCompany(ctx context.Context, companyID string) ([]domain.Opportunity, error)
	GetOwned(ctx context.Context, companyID, id string) (*domain.Opportunity, error)
	Update(ctx context.Context, companyID, id string, update domain.OpportunityUpdate) (*domain.Opportunity, error)
	Delete(ctx context.Context, companyID, id string) error
	// ListPublic returns every posting with the owning company's name joined.
	ListPublic(ctx context.Context) ([]domain.Opportunity, error)
	// ListEligible returns the postings the student passes the eligibility rule for.
	ListEligible(ctx context.Context, studentID string) ([]domain.Opportunity, error)
}
