package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (domain.Principal, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.Principal, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

type stubStudentService struct {
	getFn          func(ctx context.Context, id string) (*domain.Student, error)
	updateFn       func(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error)
	uploadFn       func(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error)
	listVerifiedFn func(ctx context.Context) ([]domain.Student, error)
}

func (s *stubStudentService) GetProfile(ctx context.Context, id string) (*domain.Student, error) {
	return s.getFn(ctx, id)
}

func (s *stubStudentService) UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubStudentService) UploadResume(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error) {
	return s.uploadFn(ctx, id, up)
}

func (s *stubStudentService) ListVerified(ctx context.Context) ([]domain.Student, error) {
	return s.listVerifiedFn(ctx)
}

type stubApplicationService struct {
	applyFn          func(ctx context.Context, in ports.ApplyInput) (*domain.Application, error)
	listStudentFn    func(ctx context.Context, studentID string) ([]ports.StudentApplication, error)
	listForCompanyFn func(ctx context.Context, companyID string) ([]ports.CompanyApplication, error)
}

func (s *stubApplicationService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.Application, error) {
	return s.applyFn(ctx, in)
}

func (s *stubApplicationService) ListForStudent(ctx context.Context, studentID string) ([]ports.StudentApplication, error) {
	return s.listStudentFn(ctx, studentID)
}

func (s *stubApplicationService) ListForCompany(ctx context.Context, companyID string) ([]ports.CompanyApplication, error) {
	return s.listForCompanyFn(ctx, companyID)
}

type stubOpportunityService struct {
	createFn       func(ctx context.Context, companyID string, o domain.Opportunity) (*domain.Opportunity, error)
	listCompanyFn  func(ctx context.Context, companyID string) ([]domain.Opportunity, error)
	getOwnedFn     func(ctx context.Context, companyID, id string) (*domain.Opportunity, error)
	updateFn       func(ctx context.Context, companyID, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error)
	deleteFn       func(ctx context.Context, companyID, id string) error
	listPublicFn   func(ctx context.Context) ([]domain.Opportunity, error)
	listEligibleFn func(ctx context.Context, studentID string) ([]domain.Opportunity, error)
}

func (s *stubOpportunityService) Create(ctx context.Context, companyID string, o domain.Opportunity) (*domain.Opportunity, error) {
	return s.createFn(ctx, companyID, o)
}

func (s *stubOpportunityService) ListForCompany(ctx context.Context, companyID string) ([]domain.Opportunity, error) {
	return s.listCompanyFn(ctx, companyID)
}

func (s *stubOpportunityService) GetOwned(ctx context.Context, companyID, id string) (*domain.Opportunity, error) {
	return s.getOwnedFn(ctx, companyID, id)
}

func (s *stubOpportunityService) Update(ctx context.Context, companyID, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error) {
	return s.updateFn(ctx, companyID, id, u)
}

func (s *stubOpportunityService) Delete(ctx context.Context, companyID, id string) error {
	return s.deleteFn(ctx, companyID, id)
}

func (s *stubOpportunityService) ListPublic(ctx context.Context) ([]domain.Opportunity, error) {
	return s.listPublicFn(ctx)
}

func (s *stubOpportunityService) ListEligible(ctx context.Context, studentID string) ([]domain.Opportunity, error) {
	return s.listEligibleFn(ctx, studentID)
}

type stubTPOService struct {
	studentsFn      func(ctx context.Context) ([]domain.Student, error)
	companiesFn     func(ctx context.Context) ([]domain.Company, error)
	opportunitiesFn func(ctx context.Context) ([]domain.Opportunity, error)
	verifyFn        func(ctx context.Context, id string) (*domain.Student, error)
	getStudentFn    func(ctx context.Context, id string) (*domain.Student, error)
}

func (s *stubTPOService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.studentsFn(ctx)
}

func (s *stubTPOService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.companiesFn(ctx)
}

func (s *stubTPOService) ListOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	return s.opportunitiesFn(ctx)
}

func (s *stubTPOService) VerifyStudent(ctx context.Context, id string) (*domain.Student, error) {
	return s.verifyFn(ctx, id)
}

func (s *stubTPOService) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	return s.getStudentFn(ctx, id)
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

var (
	studentCaller   = &domain.Identity{SubjectID: "stu-1", Role: domain.RoleStudent, Email: "ana@example.com"}
	recruiterCaller = &domain.Identity{SubjectID: "co-1", Role: domain.RoleRecruiter, Email: "hr@acme.test"}
	tpoCaller       = &domain.Identity{SubjectID: "tpo-1", Role: domain.RoleTPO, Email: "tpo@college.test"}
)

// newJSONContext builds an echo context for a JSON request. When id is set the
// request carries it the way the Auth middleware would.
func newJSONContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return newContext(req, id)
}

func newContext(req *http.Request, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	if id != nil {
		req = req.WithContext(domain.WithIdentity(req.Context(), *id))
	}
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

// wantValidation fails unless err is a ValidationError carrying msg.
func wantValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error %q, got %v", msg, err)
	}
	if ve.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, ve.Message)
	}
}
