package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.Config{
		TrackerURL:        url,
		TrackerOrgID:      "org-1",
		TrackerOAuthToken: "secret",
		TrackerQueue:      "HELP",
	})
}

func ticket() *domain.Ticket {
	return &domain.Ticket{
		Summary:     "[Kurganmk] Printer broken",
		Description: "Printer on 3rd floor jams",
		Queue:       "HELP",
		Author:      "ivan",
		Followers:   []string{"ivan"},
	}
}

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/issues/", r.URL.Path)
		assert.Equal(t, "OAuth secret", r.Header.Get("Authorization"))
		assert.Equal(t, "org-1", r.Header.Get("X-Cloud-Org-ID"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key":"HELP-42","id":"abc123"}`))
	}))
	defer srv.Close()

	created, err := newTestClient(srv.URL).Submit(context.Background(), ticket())
	require.NoError(t, err)
	assert.Equal(t, "HELP-42", created.Key)
	assert.Equal(t, "abc123", created.ID)
}

func TestSubmit_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errorMessages":["Queue is required"]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), ticket())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubmission)

	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"Queue is required"}, se.Messages)
	assert.False(t, se.UnknownFollower())
}

func TestSubmit_UnknownFollower(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errorMessages":["Follower user \"ivan\" does not exist"]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), ticket())
	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.UnknownFollower())
}

func TestSubmit_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Submit(context.Background(), ticket())
	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Empty(t, se.Messages)
}

func TestSubmit_InvalidTicket(t *testing.T) {
	_, err := newTestClient("http://unused").Submit(context.Background(), &domain.Ticket{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmit_WithAttachment(t *testing.T) {
	var attachPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/issues/" {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"key":"HELP-7","id":"x"}`))
			return
		}
		attachPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "photo.jpg", header.Filename)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tk := ticket()
	tk.Attachment = &domain.Attachment{Filename: "photo.jpg", Data: []byte{0xff, 0xd8}}
	created, err := newTestClient(srv.URL).Submit(context.Background(), tk)
	require.NoError(t, err)
	assert.Equal(t, "HELP-7", created.Key)
	assert.Equal(t, "/v2/issues/HELP-7/attachments", attachPath)
}

func TestSubmit_AttachmentFailureDoesNotFailSubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/issues/" {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"key":"HELP-8","id":"y"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tk := ticket()
	tk.Attachment = &domain.Attachment{Filename: "photo.jpg", Data: []byte{0x00}}
	created, err := newTestClient(srv.URL).Submit(context.Background(), tk)
	require.NoError(t, err)
	assert.Equal(t, "HELP-8", created.Key)
}
