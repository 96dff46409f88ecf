package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

type OpportunityService struct {
	repo      ports.OpportunityRepository
	companies ports.CompanyRepository
	students  ports.StudentRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewOpportunityService(
	repo ports.OpportunityRepository,
	companies ports.CompanyRepository,
	students ports.StudentRepository,
	log zerolog.Logger,
) *OpportunityService {
	return &OpportunityService{repo: repo, companies: companies, students: students, log: log, now: time.Now}
}

func (s *OpportunityService) Create(ctx context.Context, companyID string, o domain.Opportunity) (*domain.Opportunity, error) {
	o.Title = strings.TrimSpace(o.Title)
	if o.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if o.MinGPA < 0 {
		return nil, domain.NewValidationError("minGpa must not be negative")
	}

	now := s.now().UTC()
	o.ID = ""
	o.CompanyID = companyID
	o.CompanyName = ""
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Skills == nil {
		o.Skills = []string{}
	}

	created, err := s.repo.Create(ctx, &o)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("company_id", companyID).Str("opportunity_id", created.ID).Msg("opportunity created")
	return created, nil
}

func (s *OpportunityService) ListForCompany(ctx context.Context, companyID string) ([]domain.Opportunity, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *OpportunityService) GetOwned(ctx context.Context, companyID, id string) (*domain.Opportunity, error) {
	return s.repo.FindOwned(ctx, companyID, id)
}

// Update changes a posting owned by companyID. A posting owned by another
// company is reported as not found.
func (s *OpportunityService) Update(ctx context.Context, companyID, id string, update domain.OpportunityUpdate) (*domain.Opportunity, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, domain.NewValidationError("title must not be empty")
	}
	if update.MinGPA != nil && *update.MinGPA < 0 {
		return nil, domain.NewValidationError("minGpa must not be negative")
	}
	if update.Empty() {
		return s.repo.FindOwned(ctx, companyID, id)
	}

	updated, err := s.repo.UpdateOwned(ctx, companyID, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("company_id", companyID).Str("opportunity_id", id).Msg("opportunity updated")
	return updated, nil
}

func (s *OpportunityService) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteOwned(ctx, companyID, id); err != nil {
		return err
	}
	s.log.Info().Str("company_id", companyID).Str("opportunity_id", id).Msg("opportunity deleted")
	return nil
}

func (s *OpportunityService) ListPublic(ctx context.Context) ([]domain.Opportunity, error) {
	opps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.joinCompanyNames(ctx, opps); err != nil {
		return nil, err
	}
	return opps, nil
}

// ListEligible fetches every posting and the requesting student, then keeps
// the postings the student is eligible for, in catalogue order.
func (s *OpportunityService) ListEligible(ctx context.Context, studentID string) ([]domain.Opportunity, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	all, err := s.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	eligible := slices.Collect(domain.FilterEligible(student, all))
	if eligible == nil {
		eligible = []domain.Opportunity{}
	}

	metrics.EligibleOpportunities.Observe(float64(len(eligible)))
	return eligible, nil
}

func (s *OpportunityService) joinCompanyNames(ctx context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		return nil
	}

	ids := make([]string, 0, len(opps))
	for _, o := range opps {
		ids = append(ids, o.CompanyID)
	}
	companies, err := s.companies.FindByIDs(ctx, uniq(ids))
	if err != nil {
		return err
	}

	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	for i := range opps {
		opps[i].CompanyName = names[opps[i].CompanyID]
	}
	return nil
}
