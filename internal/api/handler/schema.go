package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// --- JSON helpers ---

// lenientList accepts either a JSON array or a single value. A lone string is
// trimmed and wrapped; a blank string, null or any other shape yields an empty
// list. set records that the field was present in the body at all.
type lenientList[T any] struct {
	values []T
	set    bool
}

func (l *lenientList[T]) UnmarshalJSON(b []byte) error {
	l.set = true
	l.values = []T{}

	var many []T
	if err := json.Unmarshal(b, &many); err == nil {
		if many != nil {
			l.values = many
		}
		return nil
	}

	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return nil
	}
	if s, ok := any(one).(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			l.values = any([]string{s}).([]T)
		}
	}
	return nil
}

// ptr returns nil when the field was absent from the body.
func (l lenientList[T]) ptr() *[]T {
	if !l.set {
		return nil
	}
	v := l.values
	return &v
}

// looseString accepts a JSON string or number. Profile forms send numeric
// fields either way.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

func (s *looseString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// looseNumber accepts a JSON number or a numeric string.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = looseNumber(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return domain.NewValidationError("%q is not a number", str)
	}
	*n = looseNumber(f)
	return nil
}

func (n *looseNumber) ptr() *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}

var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDeadline accepts RFC 3339 timestamps and plain dates. Blank means unset.
func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("deadline must be a date (YYYY-MM-DD or RFC 3339)")
}

// nonNil keeps empty listings rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// --- Common responses ---

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the envelope produced by the API error handler.
type errorResponse struct {
	Message string `json:"message" example:"Server error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	Type     string `json:"type"     validate:"required" example:"student"`
}

func (registerRequest) requiredMessage() string { return "name, email, password, type are required" }

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type"     validate:"required" example:"recruiter"`
}

func (loginRequest) requiredMessage() string { return "email, password and type are required" }

type tpoRegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

func (tpoRegisterRequest) requiredMessage() string { return "name, email, password are required" }

type tpoLoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (tpoLoginRequest) requiredMessage() string { return "email and password are required" }

type registerResponse struct {
	Message string          `json:"message"`
	Student *domain.Student `json:"student,omitempty"`
	Company *domain.Company `json:"company,omitempty"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  domain.Principal `json:"user" swaggertype:"object"`
}

type tpoRegisterResponse struct {
	Message string      `json:"message"`
	TPO     *domain.TPO `json:"tpo"`
}

// tpoLoginResponse carries the account under both keys; older clients read tpo.
type tpoLoginResponse struct {
	Token string      `json:"token"`
	User  *domain.TPO `json:"user"`
	TPO   *domain.TPO `json:"tpo"`
}

// --- Student ---

type profileRequest struct {
	FullName           *string                           `json:"fullName"`
	Phone              *looseString                      `json:"phone"               swaggertype:"string"`
	Department         *string                           `json:"department"`
	RollNumber         *looseString                      `json:"rollNumber"          swaggertype:"string"`
	Semester           *looseString                      `json:"semester"            swaggertype:"string"`
	GPA                *looseString                      `json:"gpa"                 swaggertype:"string"`
	TenthPercent       *looseString                      `json:"tenthPercent"        swaggertype:"string"`
	TwelfthPercent     *looseString                      `json:"twelfthPercent"      swaggertype:"string"`
	ActiveBacklogs     *looseString                      `json:"activeBacklogs"      swaggertype:"string"`
	Skills             lenientList[string]               `json:"skills"              swaggertype:"array,string"`
	PreferredRoles     lenientList[string]               `json:"preferredRoles"      swaggertype:"array,string"`
	PreferredLocations lenientList[string]               `json:"preferredLocations"  swaggertype:"array,string"`
	Projects           lenientList[domain.Project]       `json:"projects"            swaggertype:"array,object"`
	Certifications     lenientList[domain.Certification] `json:"certifications"      swaggertype:"array,object"`
	ResumeURL          *string                           `json:"resumeUrl"`
	ResumeFileName     *string                           `json:"resumeFileName"`
}

func (r profileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:               r.FullName,
		Phone:              r.Phone.ptr(),
		Department:         r.Department,
		RollNumber:         r.RollNumber.ptr(),
		Semester:           r.Semester.ptr(),
		GPA:                r.GPA.ptr(),
		TenthPercent:       r.TenthPercent.ptr(),
		TwelfthPercent:     r.TwelfthPercent.ptr(),
		ActiveBacklogs:     r.ActiveBacklogs.ptr(),
		Skills:             r.Skills.ptr(),
		PreferredRoles:     r.PreferredRoles.ptr(),
		PreferredLocations: r.PreferredLocations.ptr(),
		Projects:           r.Projects.ptr(),
		Certifications:     r.Certifications.ptr(),
		ResumeURL:          r.ResumeURL,
		ResumeFileName:     r.ResumeFileName,
	}
}

type studentResponse struct {
	Student *domain.Student `json:"student"`
}

type studentMessageResponse struct {
	Message string          `json:"message"`
	Student *domain.Student `json:"student"`
}

type studentsResponse struct {
	Students []domain.Student `json:"students"`
}

type resumeResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// --- Applications ---

type applyRequest struct {
	OpportunityID  string `json:"opportunityId"  validate:"required"`
	CompanyID      string `json:"companyId"      validate:"required"`
	Position       string `json:"position"       validate:"required"`
	AdditionalInfo string `json:"additionalInfo"`
}

func (applyRequest) requiredMessage() string { return "Missing required fields" }

type applicationResponse struct {
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

type studentApplicationsResponse struct {
	Applications []ports.StudentApplication `json:"applications"`
}

type companyApplicationsResponse struct {
	Applications []ports.CompanyApplication `json:"applications"`
}

// --- Opportunities ---

type opportunityRequest struct {
	Title       *string             `json:"title"`
	Role        *string             `json:"role"`
	Package     *looseString        `json:"package"     swaggertype:"string"`
	Description *string             `json:"description"`
	Location    *string             `json:"location"`
	Deadline    *string             `json:"deadline"    example:"2026-12-31"`
	MinGPA      *looseNumber        `json:"minGpa"      validate:"omitempty,min=0" swaggertype:"number"`
	Department  *string             `json:"department"  example:"CSE"`
	Skills      lenientList[string] `json:"skills"      swaggertype:"array,string"`
}

// toOpportunity builds a new posting; absent fields take their zero value.
func (r opportunityRequest) toOpportunity() (domain.Opportunity, error) {
	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return domain.Opportunity{}, err
	}
	o := domain.Opportunity{
		Title:       deref(r.Title),
		Role:        deref(r.Role),
		Package:     deref(r.Package.ptr()),
		Description: deref(r.Description),
		Location:    deref(r.Location),
		Deadline:    deadline,
		Department:  deref(r.Department),
		Skills:      r.Skills.values,
	}
	if r.MinGPA != nil {
		o.MinGPA = float64(*r.MinGPA)
	}
	return o, nil
}

// toUpdate maps present fields only. An explicit blank deadline clears it.
func (r opportunityRequest) toUpdate() (domain.OpportunityUpdate, error) {
	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return domain.OpportunityUpdate{}, err
	}
	return domain.OpportunityUpdate{
		Title:         r.Title,
		Role:          r.Role,
		Package:       r.Package.ptr(),
		Description:   r.Description,
		Location:      r.Location,
		Deadline:      deadline,
		MinGPA:        r.MinGPA.ptr(),
		Department:    r.Department,
		Skills:        r.Skills.ptr(),
		ClearDeadline: r.Deadline != nil && deadline == nil,
	}, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

type opportunityResponse struct {
	Opportunity *domain.Opportunity `json:"opportunity"`
}

type opportunityMessageResponse struct {
	Message     string              `json:"message"`
	Opportunity *domain.Opportunity `json:"opportunity"`
}

type opportunitiesResponse struct {
	Opportunities []domain.Opportunity `json:"opportunities"`
}

type companiesResponse struct {
	Companies []domain.Company `json:"companies"`
}
