package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"feed-planner/pkg/logger"
	"feed-planner/pkg/s3"

	"github.com/google/uuid"
)

type UploadUseCase interface {
	// Forward streams a multipart body untouched to the external upload host
	// and returns the public URL from its response.
	Forward(ctx context.Context, contentType string, body io.Reader) (string, error)
	// Store uploads one file to the S3 bucket and returns its public URL.
	Store(ctx context.Context, filename string, file io.Reader, contentType string) (string, error)
}

var ErrNoStorageBackend = errors.New("s3 storage backend is not configured")

type uploadUseCase struct {
	httpClient *http.Client
	uploadHost string
	s3Client   *s3.Client
	logger     *logger.Logger
}

func NewUploadUseCase(uploadHost string, s3Client *s3.Client, log *logger.Logger) UploadUseCase {
	return &uploadUseCase{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		uploadHost: uploadHost,
		s3Client:   s3Client,
		logger:     log,
	}
}

// Forward does not re-parse the multipart body; the upstream host receives the
// exact boundary and content type the client used.
func (uc *uploadUseCase) Forward(ctx context.Context, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uc.uploadHost, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload host unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	text := strings.TrimSpace(string(raw))

	// The host reports failures as 200s with an error marker in the text, so
	// both signals are checked. The raw text is kept for diagnostics.
	if resp.StatusCode < 200 || resp.StatusCode > 299 || strings.Contains(strings.ToLower(text), "error") {
		uc.logger.Error("Upload host returned status %d: %s", resp.StatusCode, text)
		return "", fmt.Errorf("upload failed: %s", text)
	}

	return text, nil
}

func (uc *uploadUseCase) Store(ctx context.Context, filename string, file io.Reader, contentType string) (string, error) {
	if uc.s3Client == nil {
		return "", ErrNoStorageBackend
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), filepath.Ext(filename))
	url, err := uc.s3Client.UploadFile(key, file, contentType)
	if err != nil {
		return "", err
	}
	return url, nil
}
