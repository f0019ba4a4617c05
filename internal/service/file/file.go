package file

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	s3pkg "github.com/Omar96MJ/sanad-sub001/pkg/s3"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedImageExt covers profile image uploads.
var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UploadResult struct {
	Key      string
	FileName string
	Size     int64
	MimeType string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// UploadProfileImage stores a user's profile image under a fresh key.
	UploadProfileImage(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (*UploadResult, error)
	GetDownloadURL(ctx context.Context, fileKey string) (string, error)
	Delete(ctx context.Context, fileKey string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type fileService struct {
	s3 *s3pkg.Client
}

func New(s3Client *s3pkg.Client) Service {
	return &fileService{s3: s3Client}
}

func (s *fileService) UploadProfileImage(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (*UploadResult, error) {
	if fh.Size > maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return nil, ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("profile-images/%s/%s%s", userID, uuid.Must(uuid.NewV7()), ext)

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	if err := s.s3.Upload(ctx, key, mime, src, fh.Size); err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	return &UploadResult{
		Key:      key,
		FileName: fh.Filename,
		Size:     fh.Size,
		MimeType: mime,
	}, nil
}

func (s *fileService) GetDownloadURL(ctx context.Context, fileKey string) (string, error) {
	url, err := s.s3.PresignDownload(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

func (s *fileService) Delete(ctx context.Context, fileKey string) error {
	if err := s.s3.Delete(ctx, fileKey); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
