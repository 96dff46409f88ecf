package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// TPOService backs the placement office's administrative endpoints.
type TPOService struct {
	students      ports.StudentRepository
	companies     ports.CompanyRepository
	opportunities ports.OpportunityRepository
	notifier      ports.Notifier
	log           zerolog.Logger
}

func NewTPOService(
	students ports.StudentRepository,
	companies ports.CompanyRepository,
	opportunities ports.OpportunityRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *TPOService {
	return &TPOService{
		students:      students,
		companies:     companies,
		opportunities: opportunities,
		notifier:      notifier,
		log:           log,
	}
}

func (s *TPOService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.students.List(ctx, ports.StudentFilter{})
}

func (s *TPOService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *TPOService) ListOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	return s.opportunities.List(ctx)
}

func (s *TPOService) GetStudent(ctx context.Context, studentID string) (*domain.Student, error) {
	return s.students.FindByID(ctx, studentID)
}

// VerifyStudent marks the student as verified and tells them by email.
// Verifying an already verified student is a no-op apart from the email.
func (s *TPOService) VerifyStudent(ctx context.Context, studentID string) (*domain.Student, error) {
	student, err := s.students.SetVerified(ctx, studentID, true)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("student_id", studentID).Msg("student verified")

	if email, err := studentVerifiedEmail(student); err != nil {
		s.log.Warn().Err(err).Str("student_id", studentID).Msg("render verification email")
	} else {
		s.notifier.Notify(email)
	}
	return student, nil
}
