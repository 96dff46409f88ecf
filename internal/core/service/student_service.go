package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

type StudentService struct {
	repo   ports.StudentRepository
	assets ports.AssetStore
	log    zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, assets ports.AssetStore, log zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, assets: assets, log: log}
}

func (s *StudentService) GetProfile(ctx context.Context, studentID string) (*domain.Student, error) {
	return s.repo.FindByID(ctx, studentID)
}

// UpdateProfile applies only the fields present in update. Projects and
// certifications without an id get a fresh one so the client can address them.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID string, update domain.ProfileUpdate) (*domain.Student, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			update.Name = nil
		} else {
			update.Name = &name
		}
	}
	if update.ResumeURL != nil && *update.ResumeURL == "" {
		update.ResumeURL = nil
	}
	if update.ResumeFileName != nil && *update.ResumeFileName == "" {
		update.ResumeFileName = nil
	}
	if update.Projects != nil {
		projects := *update.Projects
		for i := range projects {
			if projects[i].ID == "" {
				projects[i].ID = uuid.NewString()
			}
		}
	}
	if update.Certifications != nil {
		certs := *update.Certifications
		for i := range certs {
			if certs[i].ID == "" {
				certs[i].ID = uuid.NewString()
			}
		}
	}

	student, err := s.repo.UpdateProfile(ctx, studentID, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("student_id", studentID).Msg("profile saved")
	return student, nil
}

// UploadResume forwards the file to the asset host and records the returned
// URL together with the original file name.
func (s *StudentService) UploadResume(ctx context.Context, studentID string, upload ports.ResumeUpload) (*ports.ResumeResult, error) {
	if upload.Body == nil {
		return nil, domain.NewValidationError("No file uploaded")
	}
	fileName := filepath.Base(upload.FileName)
	if fileName == "." || fileName == string(filepath.Separator) {
		fileName = "resume"
	}

	if _, err := s.repo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}

	url, err := s.assets.Upload(ctx, fileName, upload.Body)
	if err != nil {
		metrics.ResumeUploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	update := domain.ProfileUpdate{ResumeURL: &url, ResumeFileName: &fileName}
	if _, err := s.repo.UpdateProfile(ctx, studentID, update); err != nil {
		return nil, err
	}

	metrics.ResumeUploadsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("student_id", studentID).Str("file", fileName).Msg("resume uploaded")

	return &ports.ResumeResult{URL: url, FileName: fileName}, nil
}

func (s *StudentService) ListVerified(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx, ports.StudentFilter{VerifiedOnly: true})
}
