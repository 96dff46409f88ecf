package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

type ApplicationService struct {
	repo          ports.ApplicationRepository
	opportunities ports.OpportunityRepository
	students      ports.StudentRepository
	companies     ports.CompanyRepository
	notifier      ports.Notifier
	log           zerolog.Logger
	now           func() time.Time
}

func NewApplicationService(
	repo ports.ApplicationRepository,
	opportunities ports.OpportunityRepository,
	students ports.StudentRepository,
	companies ports.CompanyRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		opportunities: opportunities,
		students:      students,
		companies:     companies,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
	}
}

// Apply records a student's application. The pre-check for an earlier
// application is only a fast path; the repository's unique index decides
// concurrent attempts.
func (s *ApplicationService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.Application, error) {
	in.Position = strings.TrimSpace(in.Position)
	if in.OpportunityID == "" || in.CompanyID == "" || in.Position == "" {
		return nil, domain.NewValidationError("Missing required fields")
	}

	opp, err := s.opportunities.FindByID(ctx, in.OpportunityID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if opp.CompanyID != in.CompanyID {
		return nil, domain.NewValidationError("companyId does not match the opportunity")
	}

	if _, err := s.repo.FindByStudentAndOpportunity(ctx, in.StudentID, in.OpportunityID); err == nil {
		metrics.ApplicationConflictsTotal.Inc()
		return nil, domain.ErrAlreadyApplied
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	app := &domain.Application{
		StudentID:      in.StudentID,
		CompanyID:      in.CompanyID,
		OpportunityID:  in.OpportunityID,
		Position:       in.Position,
		ResumeURL:      student.ResumeURL,
		AdditionalInfo: in.AdditionalInfo,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			metrics.ApplicationConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.ApplicationsCreatedTotal.Inc()
	s.log.Info().
		Str("student_id", in.StudentID).
		Str("opportunity_id", in.OpportunityID).
		Str("application_id", created.ID).
		Msg("application submitted")

	if email, err := applicationReceivedEmail(student, opp); err != nil {
		s.log.Warn().Err(err).Str("application_id", created.ID).Msg("render confirmation email")
	} else {
		s.notifier.Notify(email)
	}

	return created, nil
}

func (s *ApplicationService) ListForStudent(ctx context.Context, studentID string) ([]ports.StudentApplication, error) {
	apps, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	companyIDs := make([]string, 0, len(apps))
	oppIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		companyIDs = append(companyIDs, a.CompanyID)
		oppIDs = append(oppIDs, a.OpportunityID)
	}

	companies, err := s.companies.FindByIDs(ctx, uniq(companyIDs))
	if err != nil {
		return nil, err
	}
	opps, err := s.opportunities.FindByIDs(ctx, uniq(oppIDs))
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	summaries := make(map[string]*ports.OpportunitySummary, len(opps))
	for _, o := range opps {
		summaries[o.ID] = &ports.OpportunitySummary{ID: o.ID, Title: o.Title, Role: o.Role, Package: o.Package}
	}

	out := make([]ports.StudentApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, ports.StudentApplication{
			Application: a,
			CompanyName: names[a.CompanyID],
			Opportunity: summaries[a.OpportunityID],
		})
	}
	return out, nil
}

// ListForCompany only ever returns applications addressed to companyID.
func (s *ApplicationService) ListForCompany(ctx context.Context, companyID string) ([]ports.CompanyApplication, error) {
	apps, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		studentIDs = append(studentIDs, a.StudentID)
	}
	students, err := s.students.FindByIDs(ctx, uniq(studentIDs))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Student, len(students))
	for i := range students {
		byID[students[i].ID] = &students[i]
	}

	out := make([]ports.CompanyApplication, 0, len(apps))
	for _, a := range apps {
		if a.CompanyID != companyID {
			continue
		}
		out = append(out, ports.CompanyApplication{Application: a, Student: byID[a.StudentID]})
	}
	return out, nil
}

func uniq(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
