package domain

import "time"

// ApplicationStatus is informational; no transitions are exposed.
type ApplicationStatus string

const StatusPending ApplicationStatus = "pending"

// Application links a student to an opportunity. ResumeURL is a snapshot
// taken at apply time and does not follow later resume changes.
type Application struct {
	ID             string            `json:"_id"`
	StudentID      string            `json:"student"`
	CompanyID      string            `json:"company"`
	OpportunityID  string            `json:"opportunityId"`
	Position       string            `json:"position"`
	ResumeURL      string            `json:"resumeUrl"`
	AdditionalInfo string            `json:"additionalInfo,omitempty"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
