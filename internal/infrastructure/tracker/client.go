// Package tracker is a minimal client for the Yandex Tracker v2 issues API:
// issue creation plus attachment upload, which is all the intake flow needs.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/hobbs-it/helpdesk-bot/internal/pkg/validate"
)

// SubmissionError carries the provider's error messages for a rejected
// submission.
type SubmissionError struct {
	StatusCode int
	Messages   []string
}

func (e *SubmissionError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("tracker returned %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("tracker returned %d", e.StatusCode)
}

func (e *SubmissionError) Unwrap() error { return domain.ErrSubmission }

// UnknownFollower reports whether the tracker rejected the issue because
// the follower login does not exist there — i.e. the verified email has no
// tracker account. Surfaced to the user as "email not recognized".
func (e *SubmissionError) UnknownFollower() bool {
	for _, m := range e.Messages {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "follower") &&
			(strings.Contains(lower, "does not exist") || strings.Contains(lower, "not found")) {
			return true
		}
	}
	return false
}

// Client talks to the tracker API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	orgID      string
	token      string
	queue      string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.TrackerURL, "/"),
		orgID:      cfg.TrackerOrgID,
		token:      cfg.TrackerOAuthToken,
		queue:      cfg.TrackerQueue,
	}
}

// Queue returns the configured tracker queue key.
func (c *Client) Queue() string { return c.queue }

type createIssueRequest struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Queue       string   `json:"queue"`
	Author      string   `json:"author"`
	Followers   []string `json:"followers"`
}

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
}

// Submit creates the issue and, when the ticket carries an attachment,
// uploads it to the created issue. Attachment failures are logged but do
// not fail the submission — the issue already exists at that point.
func (c *Client) Submit(ctx context.Context, t *domain.Ticket) (*domain.CreatedTicket, error) {
	if err := validate.Struct(t); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	body, err := json.Marshal(createIssueRequest{
		Summary:     t.Summary,
		Description: t.Description,
		Queue:       t.Queue,
		Author:      t.Author,
		Followers:   t.Followers,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/issues/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSubmission, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.submissionError(resp)
	}

	var created domain.CreatedTicket
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}

	if t.Attachment != nil {
		if err := c.attach(ctx, created.Key, t.Attachment); err != nil {
			slog.Warn("attachment upload failed", "issue", created.Key, "err", err)
		}
	}
	return &created, nil
}

func (c *Client) attach(ctx context.Context, issueKey string, a *domain.Attachment) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", a.Filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(a.Data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v2/issues/%s/attachments?filename=%s", c.baseURL, issueKey, a.Filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.submissionError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("X-Cloud-Org-ID", c.orgID)
}

func (c *Client) submissionError(resp *http.Response) error {
	var er errorResponse
	// Best effort: the body may not be JSON at all.
	_ = json.NewDecoder(resp.Body).Decode(&er)
	return &SubmissionError{StatusCode: resp.StatusCode, Messages: er.ErrorMessages}
}
