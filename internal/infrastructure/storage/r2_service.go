package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

var keySanitizer = regexp.MustCompile(`[^a-z0-9]+`)

type r2ServiceImpl struct {
	baseURL   string
	apiToken  string
	bucket    string
	publicURL string
	client    *retryablehttp.Client
}

// NewObjectStorage creates a client for an R2-compatible blob HTTP API
func NewObjectStorage(baseURL, apiToken, bucket, publicURL string) domain.ObjectStorage {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &r2ServiceImpl{
		baseURL:   baseURL,
		apiToken:  apiToken,
		bucket:    bucket,
		publicURL: publicURL,
		client:    client,
	}
}

// BuildKey derives a stable object key from a title and extension
func BuildKey(title, extension string) string {
	slug := keySanitizer.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	return fmt.Sprintf("%s.%s", slug, extension)
}

// Upload puts an object and returns its public URL
func (s *r2ServiceImpl) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", s.readError(resp)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Delete removes an object; missing objects are not an error
func (s *r2ServiceImpl) Delete(ctx context.Context, key string) error {
	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return s.readError(resp)
	}
	return nil
}

func (s *r2ServiceImpl) readError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.StorageServiceError{StatusCode: resp.StatusCode, Message: "unreadable response"}
	}

	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &domain.StorageServiceError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}
	return &domain.StorageServiceError{StatusCode: resp.StatusCode, Message: string(body)}
}
