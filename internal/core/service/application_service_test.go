package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

type applyFixture struct {
	svc       *ApplicationService
	apps      *stubApplicationRepo
	opps      *stubOpportunityRepo
	students  *stubStudentRepo
	companies *stubCompanyRepo
	notifier  *recordingNotifier

	student *domain.Student
	company *domain.Company
	opp     *domain.Opportunity
}

func newApplyFixture(t *testing.T) *applyFixture {
	t.Helper()
	f := &applyFixture{
		apps:      newStubApplicationRepo(),
		opps:      newStubOpportunityRepo(),
		students:  newStubStudentRepo(),
		companies: newStubCompanyRepo(),
		notifier:  &recordingNotifier{},
	}
	f.svc = NewApplicationService(f.apps, f.opps, f.students, f.companies, f.notifier, zerolog.Nop())

	f.student = f.students.put(&domain.Student{
		Account:   domain.Account{Name: "Asha", Email: "asha@uni.edu"},
		ResumeURL: "https://cdn.example/r1.pdf",
	})
	f.company = f.companies.put(&domain.Company{Account: domain.Account{Name: "Acme", Email: "hr@acme.io"}})

	opp, err := f.opps.Create(context.Background(), &domain.Opportunity{
		CompanyID: f.company.ID, Title: "Backend Intern", Role: "SDE", Package: "12 LPA",
	})
	if err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}
	f.opp = opp
	return f
}

func (f *applyFixture) input() ports.ApplyInput {
	return ports.ApplyInput{
		StudentID:     f.student.ID,
		OpportunityID: f.opp.ID,
		CompanyID:     f.company.ID,
		Position:      "Backend Intern",
	}
}

func TestApplicationService_Apply_Success(t *testing.T) {
	f := newApplyFixture(t)
	in := f.input()
	in.AdditionalInfo = "available from June"

	app, err := f.svc.Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.ID == "" {
		t.Fatalf("expected an id")
	}
	if app.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %q", app.Status)
	}
	if app.ResumeURL != "https://cdn.example/r1.pdf" {
		t.Fatalf("expected resume snapshot, got %q", app.ResumeURL)
	}
	if app.AdditionalInfo != "available from June" || app.CompanyID != f.company.ID {
		t.Fatalf("unexpected application: %+v", app)
	}

	sent := f.notifier.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].To != "asha@uni.edu" || !strings.Contains(sent[0].Subject, "Backend Intern") {
		t.Fatalf("unexpected email: %+v", sent[0])
	}
}

func TestApplicationService_Apply_ResumeIsSnapshot(t *testing.T) {
	f := newApplyFixture(t)

	app, err := f.svc.Apply(context.Background(), f.input())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	newURL := "https://cdn.example/r2.pdf"
	if _, err := f.students.UpdateProfile(context.Background(), f.student.ID, domain.ProfileUpdate{ResumeURL: &newURL}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	apps, err := f.apps.ListByStudent(context.Background(), f.student.ID)
	if err != nil {
		t.Fatalf("ListByStudent: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != app.ID || apps[0].ResumeURL != "https://cdn.example/r1.pdf" {
		t.Fatalf("stored application changed with profile: %+v", apps)
	}
}

func TestApplicationService_Apply_Twice(t *testing.T) {
	f := newApplyFixture(t)

	if _, err := f.svc.Apply(context.Background(), f.input()); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := f.svc.Apply(context.Background(), f.input())
	if !errors.Is(err, domain.ErrAlreadyApplied) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(f.apps.items) != 1 {
		t.Fatalf("expected 1 stored application, got %d", len(f.apps.items))
	}
	if len(f.notifier.sent()) != 1 {
		t.Fatalf("duplicate application must not send another email")
	}
}

func TestApplicationService_Apply_ConstraintDecidesRace(t *testing.T) {
	f := newApplyFixture(t)
	if _, err := f.svc.Apply(context.Background(), f.input()); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	f.apps.hidePrecheck = true
	_, err := f.svc.Apply(context.Background(), f.input())
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected unique constraint to report ErrAlreadyApplied, got %v", err)
	}
	if len(f.apps.items) != 1 {
		t.Fatalf("expected 1 stored application, got %d", len(f.apps.items))
	}
}

func TestApplicationService_Apply_MissingFields(t *testing.T) {
	f := newApplyFixture(t)

	cases := map[string]func(*ports.ApplyInput){
		"no opportunity": func(in *ports.ApplyInput) { in.OpportunityID = "" },
		"no company":     func(in *ports.ApplyInput) { in.CompanyID = "" },
		"blank position": func(in *ports.ApplyInput) { in.Position = "   " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := f.input()
			mutate(&in)
			if _, err := f.svc.Apply(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestApplicationService_Apply_NotFound(t *testing.T) {
	f := newApplyFixture(t)

	in := f.input()
	in.OpportunityID = "opp-404"
	if _, err := f.svc.Apply(context.Background(), in); !errors.Is(err, domain.ErrOpportunityNotFound) {
		t.Fatalf("expected ErrOpportunityNotFound, got %v", err)
	}

	in = f.input()
	in.StudentID = "stu-404"
	if _, err := f.svc.Apply(context.Background(), in); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestApplicationService_Apply_CompanyMismatch(t *testing.T) {
	f := newApplyFixture(t)
	other := f.companies.put(&domain.Company{Account: domain.Account{Name: "Globex"}})

	in := f.input()
	in.CompanyID = other.ID
	if _, err := f.svc.Apply(context.Background(), in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.apps.items) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestApplicationService_ListForStudent(t *testing.T) {
	f := newApplyFixture(t)
	if _, err := f.svc.Apply(context.Background(), f.input()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := f.svc.ListForStudent(context.Background(), f.student.ID)
	if err != nil {
		t.Fatalf("ListForStudent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 application, got %d", len(got))
	}
	if got[0].CompanyName != "Acme" {
		t.Fatalf("expected company name joined, got %q", got[0].CompanyName)
	}
	if got[0].Opportunity == nil || got[0].Opportunity.Title != "Backend Intern" || got[0].Opportunity.Package != "12 LPA" {
		t.Fatalf("expected opportunity summary joined, got %+v", got[0].Opportunity)
	}

	empty, err := f.svc.ListForStudent(context.Background(), "stu-unknown")
	if err != nil {
		t.Fatalf("ListForStudent: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}
}

func TestApplicationService_ListForCompany(t *testing.T) {
	f := newApplyFixture(t)
	if _, err := f.svc.Apply(context.Background(), f.input()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	other := f.companies.put(&domain.Company{Account: domain.Account{Name: "Globex"}})
	otherOpp, _ := f.opps.Create(context.Background(), &domain.Opportunity{CompanyID: other.ID, Title: "Analyst"})
	in := f.input()
	in.OpportunityID = otherOpp.ID
	in.CompanyID = other.ID
	in.Position = "Analyst"
	if _, err := f.svc.Apply(context.Background(), in); err != nil {
		t.Fatalf("Apply to other company: %v", err)
	}

	got, err := f.svc.ListForCompany(context.Background(), f.company.ID)
	if err != nil {
		t.Fatalf("ListForCompany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only own applications, got %d", len(got))
	}
	if got[0].CompanyID != f.company.ID {
		t.Fatalf("leaked application of %s", got[0].CompanyID)
	}
	if got[0].Student == nil || got[0].Student.Name != "Asha" {
		t.Fatalf("expected student profile joined, got %+v", got[0].Student)
	}
}
