package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const defaultFolder = "placement-resumes"

// ErrNotConfigured is returned when no Cloudinary credentials are set.
var ErrNotConfigured = errors.New("cloudinary: credentials are not configured")

// CloudinaryConfig accepts either a CLOUDINARY_URL or the separate credentials.
type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// uploadAPI is the subset of the Cloudinary upload API the store uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryStore implements ports.AssetStore by uploading to Cloudinary.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
}

// NewCloudinaryStore builds a store from cfg. The URL form wins when both
// forms are set.
func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return newCloudinaryStore(&cld.Upload, cfg.Folder), nil
}

func newCloudinaryStore(api uploadAPI, folder string) *CloudinaryStore {
	if folder == "" {
		folder = defaultFolder
	}
	return &CloudinaryStore{api: api, folder: folder}
}

// Upload streams body to Cloudinary and returns the secure URL. The public id
// keeps the file's base name and adds a random suffix so re-uploads never
// overwrite each other.
func (s *CloudinaryStore) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	params := uploader.UploadParams{
		PublicID:     publicID(fileName),
		Folder:       s.folder,
		ResourceType: "auto",
	}

	res, err := s.api.Upload(ctx, body, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil {
		return "", errors.New("cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: no secure url returned")
	}
	return res.SecureURL, nil
}

func publicID(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "resume-" + uuid.NewString()[:8]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return base + "-" + uuid.NewString()[:8]
}

// UnavailableStore rejects every upload with ErrNotConfigured. It stands in
// for Cloudinary in environments without credentials.
type UnavailableStore struct{}

func (UnavailableStore) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
