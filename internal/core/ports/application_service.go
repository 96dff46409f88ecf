package ports

import (
	"context"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// ApplyInput carries a student's application request. StudentID comes from
// the verified identity, never from the request body.
type ApplyInput struct {
	StudentID      string
	OpportunityID  string
	CompanyID      string
	Position       string
	AdditionalInfo string
}

// OpportunitySummary is the slice of an opportunity shown next to an application.
type OpportunitySummary struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Role    string `json:"role"`
	Package string `json:"package"`
}

// StudentApplication is an application as listed for its student.
type StudentApplication struct {
	domain.Application
	CompanyName string              `json:"companyName"`
	Opportunity *OpportunitySummary `json:"opportunity,omitempty"`
}

// CompanyApplication is an application as listed for the receiving company.
type CompanyApplication struct {
	domain.Application
	Student *domain.Student `json:"studentProfile,omitempty"`
}

type ApplicationService interface {
	Apply(ctx context.Context, in ApplyInput) (*domain.Application, error)
	ListForStudent(ctx context.Context, studentID string) ([]StudentApplication, error)
	ListForCompany(ctx context.Context, companyID string) ([]CompanyApplication, error)
}
