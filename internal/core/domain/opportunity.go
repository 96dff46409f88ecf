package domain

import "time"

// AnyDepartment disables the department check of the eligibility rule.
const AnyDepartment = "any"

// Opportunity is a job posting owned by exactly one company.
type Opportunity struct {
	ID          string     `json:"_id"`
	CompanyID   string     `json:"company"`
	CompanyName string     `json:"companyName,omitempty"`
	Title       string     `json:"title"`
	Role        string     `json:"role"`
	Package     string     `json:"package"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	MinGPA      float64    `json:"minGpa"`
	Department  string     `json:"department"`
	Skills      []string   `json:"skills"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// OpportunityUpdate is a partial update applied by the owning company.
type OpportunityUpdate struct {
	Title       *string
	Role        *string
	Package     *string
	Description *string
	Location    *string
	Deadline    *time.Time
	MinGPA      *float64
	Department  *string
	Skills      *[]string

	// ClearDeadline removes the deadline. Ignored when Deadline is set.
	ClearDeadline bool
}

// Empty reports whether no field is set.
func (u OpportunityUpdate) Empty() bool {
	return u.Title == nil && u.Role == nil && u.Package == nil && u.Description == nil &&
		u.Location == nil && u.Deadline == nil && u.MinGPA == nil && u.Department == nil && u.Skills == nil &&
		!u.ClearDeadline
}
