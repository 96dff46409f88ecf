package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

func TestStudentHandler_Profile(t *testing.T) {
	stub := &stubStudentService{
		getFn: func(ctx context.Context, id string) (*domain.Student, error) {
			if id != "stu-1" {
				t.Fatalf("expected caller id, got %q", id)
			}
			return &domain.Student{Account: domain.Account{ID: id, Name: "Ana"}, Skills: []string{"go"}}, nil
		},
	}
	h := NewStudentHandler(stub, 0)

	c, rec := newJSONContext(http.MethodGet, "/student/profile", "", studentCaller)
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	student, ok := decodeBody(t, rec)["student"].(map[string]any)
	if !ok || student["name"] != "Ana" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestStudentHandler_Profile_NoIdentity(t *testing.T) {
	h := NewStudentHandler(&stubStudentService{}, 0)

	c, _ := newJSONContext(http.MethodGet, "/student/profile", "", nil)
	if err := h.Profile(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStudentHandler_SaveProfile_CoercesFields(t *testing.T) {
	var got domain.ProfileUpdate
	stub := &stubStudentService{
		updateFn: func(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error) {
			got = u
			return &domain.Student{Account: domain.Account{ID: id}}, nil
		},
	}
	h := NewStudentHandler(stub, 0)

	body := `{
		"fullName": "Ana Lima",
		"gpa": 8.5,
		"semester": "6",
		"skills": " go ",
		"preferredRoles": ["backend", "sre"],
		"preferredLocations": "",
		"projects": [{"title": "portal"}]
	}`
	c, rec := newJSONContext(http.MethodPost, "/student/profile", body, studentCaller)
	if err := h.SaveProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if decodeBody(t, rec)["message"] != "Profile saved" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if got.Name == nil || *got.Name != "Ana Lima" {
		t.Fatalf("fullName not mapped to name: %v", got.Name)
	}
	if got.GPA == nil || *got.GPA != "8.5" {
		t.Fatalf("numeric gpa not kept as text: %v", got.GPA)
	}
	if got.Semester == nil || *got.Semester != "6" {
		t.Fatalf("semester: %v", got.Semester)
	}
	if got.Skills == nil || !slices.Equal(*got.Skills, []string{"go"}) {
		t.Fatalf("single skill string not wrapped: %v", got.Skills)
	}
	if got.PreferredRoles == nil || !slices.Equal(*got.PreferredRoles, []string{"backend", "sre"}) {
		t.Fatalf("preferredRoles: %v", got.PreferredRoles)
	}
	if got.PreferredLocations == nil || len(*got.PreferredLocations) != 0 {
		t.Fatalf("blank preferredLocations should clear the list: %v", got.PreferredLocations)
	}
	if got.Projects == nil || len(*got.Projects) != 1 || (*got.Projects)[0].Title != "portal" {
		t.Fatalf("projects: %v", got.Projects)
	}
	if got.Phone != nil || got.Department != nil || got.Certifications != nil || got.ResumeURL != nil {
		t.Fatalf("absent fields must stay unset: %+v", got)
	}
}

func TestStudentHandler_SaveProfile_RejectsMalformedBody(t *testing.T) {
	stub := &stubStudentService{
		updateFn: func(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/student/profile", `{"gpa": true}`, studentCaller)
	wantValidation(t, NewStudentHandler(stub, 0).SaveProfile(c), "Invalid request body")
}

func newUploadContext(t *testing.T, field, fileName string, content []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/student/profile/upload", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return newContext(req, studentCaller)
}

func TestStudentHandler_UploadResume(t *testing.T) {
	stub := &stubStudentService{
		uploadFn: func(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error) {
			data, err := io.ReadAll(up.Body)
			if err != nil {
				t.Fatalf("read upload: %v", err)
			}
			if id != "stu-1" || up.FileName != "cv.pdf" || string(data) != "%PDF-1.7" {
				t.Fatalf("unexpected upload: id=%s name=%s data=%q", id, up.FileName, data)
			}
			return &ports.ResumeResult{URL: "https://cdn.test/cv.pdf", FileName: up.FileName}, nil
		},
	}

	c, rec := newUploadContext(t, "file", "cv.pdf", []byte("%PDF-1.7"))
	if err := NewStudentHandler(stub, 1<<20).UploadResume(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := decodeBody(t, rec)
	if body["url"] != "https://cdn.test/cv.pdf" || body["fileName"] != "cv.pdf" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestStudentHandler_UploadResume_MissingFile(t *testing.T) {
	stub := &stubStudentService{
		uploadFn: func(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	c, _ := newUploadContext(t, "attachment", "cv.pdf", []byte("data"))
	wantValidation(t, NewStudentHandler(stub, 1<<20).UploadResume(c), "No file uploaded")
}

func TestStudentHandler_UploadResume_TooLarge(t *testing.T) {
	stub := &stubStudentService{
		uploadFn: func(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	c, _ := newUploadContext(t, "file", "cv.pdf", bytes.Repeat([]byte("x"), 4096))
	err := NewStudentHandler(stub, 512).UploadResume(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestStudentHandler_UploadResume_UploadFailed(t *testing.T) {
	stub := &stubStudentService{
		uploadFn: func(ctx context.Context, id string, up ports.ResumeUpload) (*ports.ResumeResult, error) {
			return nil, domain.ErrUploadFailed
		},
	}

	c, _ := newUploadContext(t, "file", "cv.pdf", []byte("data"))
	if err := NewStudentHandler(stub, 0).UploadResume(c); !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestStudentHandler_Get(t *testing.T) {
	stub := &stubStudentService{
		getFn: func(ctx context.Context, id string) (*domain.Student, error) {
			if id != "stu-9" {
				return nil, domain.ErrStudentNotFound
			}
			return &domain.Student{Account: domain.Account{ID: id}}, nil
		},
	}
	h := NewStudentHandler(stub, 0)

	c, rec := newJSONContext(http.MethodGet, "/students/stu-9", "", recruiterCaller)
	c.SetPath("/students/:id")
	c.SetParamNames("id")
	c.SetParamValues("stu-9")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodGet, "/students/nope", "", recruiterCaller)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStudentHandler_ListVerified_Empty(t *testing.T) {
	stub := &stubStudentService{
		listVerifiedFn: func(ctx context.Context) ([]domain.Student, error) {
			return nil, nil
		},
	}

	c, rec := newJSONContext(http.MethodGet, "/students/verified", "", nil)
	if err := NewStudentHandler(stub, 0).ListVerified(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"students\":[]}\n" {
		t.Fatalf("expected empty list, got %q", got)
	}
}
