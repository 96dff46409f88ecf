package domain

import "time"

// Account holds the fields every role partition shares.
type Account struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Base gives callers uniform access to the shared fields of any account variant.
func (a *Account) Base() *Account { return a }

// Principal is implemented by *Student, *Company and *TPO.
type Principal interface {
	Base() *Account
}

type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Student struct {
	Account
	IsVerified bool `json:"isverified"`

	Phone      string `json:"phone"`
	Department string `json:"department"`
	RollNumber string `json:"rollNumber"`
	Semester   string `json:"semester"`

	// GPA is free text as entered by the student; eligibility parses it.
	GPA            string `json:"gpa"`
	TenthPercent   string `json:"tenthPercent"`
	TwelfthPercent string `json:"twelfthPercent"`
	ActiveBacklogs string `json:"activeBacklogs"`

	Skills             []string `json:"skills"`
	PreferredRoles     []string `json:"preferredRoles"`
	PreferredLocations []string `json:"preferredLocations"`

	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`

	ResumeURL      string `json:"resumeUrl"`
	ResumeFileName string `json:"resumeFileName"`
}

type Company struct {
	Account
}

type TPO struct {
	Account
	Verified bool `json:"verified"`
}

// ProfileUpdate is a partial student update: nil fields are left untouched.
type ProfileUpdate struct {
	Name               *string
	Phone              *string
	Department         *string
	RollNumber         *string
	Semester           *string
	GPA                *string
	TenthPercent       *string
	TwelfthPercent     *string
	ActiveBacklogs     *string
	Skills             *[]string
	PreferredRoles     *[]string
	PreferredLocations *[]string
	Projects           *[]Project
	Certifications     *[]Certification
	ResumeURL          *string
	ResumeFileName     *string
}

// Apply copies every set field of u onto s.
func (u ProfileUpdate) Apply(s *Student) {
	setString(&s.Name, u.Name)
	setString(&s.Phone, u.Phone)
	setString(&s.Department, u.Department)
	setString(&s.RollNumber, u.RollNumber)
	setString(&s.Semester, u.Semester)
	setString(&s.GPA, u.GPA)
	setString(&s.TenthPercent, u.TenthPercent)
	setString(&s.TwelfthPercent, u.TwelfthPercent)
	setString(&s.ActiveBacklogs, u.ActiveBacklogs)
	setString(&s.ResumeURL, u.ResumeURL)
	setString(&s.ResumeFileName, u.ResumeFileName)
	if u.Skills != nil {
		s.Skills = *u.Skills
	}
	if u.PreferredRoles != nil {
		s.PreferredRoles = *u.PreferredRoles
	}
	if u.PreferredLocations != nil {
		s.PreferredLocations = *u.PreferredLocations
	}
	if u.Projects != nil {
		s.Projects = *u.Projects
	}
	if u.Certifications != nil {
		s.Certifications = *u.Certifications
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
