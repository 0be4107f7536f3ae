package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"feed-planner/pkg/models"
)

// ErrFeedNotFound is returned when the service has no blob for a feed id.
var ErrFeedNotFound = errors.New("feed not found")

// Client talks to the feed service and the upload relay.
type Client struct {
	httpClient    *http.Client
	feedBaseURL   string
	uploadBaseURL string
}

func NewClient(feedBaseURL, uploadBaseURL string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		feedBaseURL:   feedBaseURL,
		uploadBaseURL: uploadBaseURL,
	}
}

type apiResponse struct {
	Success bool          `json:"success"`
	FeedID  string        `json:"feedId"`
	Posts   []models.Post `json:"posts"`
	URL     string        `json:"url"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
}

// CreateFeed asks the service for a fresh empty feed and returns its id.
func (c *Client) CreateFeed(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedBaseURL+"/api/v1/feeds", nil)
	if err != nil {
		return "", err
	}

	var body apiResponse
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("failed to create feed: %w", err)
	}
	return body.FeedID, nil
}

// GetFeed fetches the full post array stored under feedID.
func (c *Client) GetFeed(ctx context.Context, feedID string) ([]models.Post, error) {
	endpoint := c.feedBaseURL + "/api/v1/feeds?feedId=" + url.QueryEscape(feedID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var body apiResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if body.Posts == nil {
		return []models.Post{}, nil
	}
	return body.Posts, nil
}

// SaveFeed replaces the stored post array for feedID wholesale.
func (c *Client) SaveFeed(ctx context.Context, feedID string, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	payload, err := json.Marshal(map[string]interface{}{
		"feedId": feedID,
		"posts":  posts,
	})
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedBaseURL+"/api/v1/feeds/save", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var body apiResponse
	if err := c.do(req, &body); err != nil {
		return fmt.Errorf("failed to save feed: %w", err)
	}
	return nil
}

// Upload sends one file through the relay and returns the public URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("fileToUpload", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.WriteField("reqtype", "fileupload"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL+"/api/v1/upload", buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var body apiResponse
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return body.URL, nil
}

// GetLegacyFeed fetches a plain static JSON post array from an arbitrary URL.
// Superseded by feed ids but still honored for old share links.
func (c *Client) GetLegacyFeed(ctx context.Context, rawURL string) ([]models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legacy feed returned status %d", resp.StatusCode)
	}

	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("failed to decode legacy feed: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (c *Client) do(req *http.Request, out *apiResponse) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, string(raw))
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrFeedNotFound
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return fmt.Errorf("service returned status %d: %s", resp.StatusCode, out.Error)
		}
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}
	return nil
}
