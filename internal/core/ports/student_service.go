package ports

import (
	"context"
	"io"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// ResumeUpload is the resume file received from the client.
type ResumeUpload struct {
	FileName string
	Body     io.Reader
}

// ResumeResult is returned after the asset host accepted the file.
type ResumeResult struct {
	URL      string
	FileName string
}

type StudentService interface {
	GetProfile(ctx context.Context, studentID string) (*domain.Student, error)
	UpdateProfile(ctx context.Context, studentID string, update domain.ProfileUpdate) (*domain.Student, error)
	UploadResume(ctx context.Context, studentID string, upload ResumeUpload) (*ResumeResult, error)
	ListVerified(ctx context.Context) ([]domain.Student, error)
}
