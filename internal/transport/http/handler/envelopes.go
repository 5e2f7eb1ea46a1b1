package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// VerifiedUsersEnvelope wraps verified-user list responses.
type VerifiedUsersEnvelope struct {
	Data  []domain.VerifiedUser `json:"data"`
	Error string                `json:"error,omitempty"`
}

// MessagesEnvelope wraps message-log responses.
type MessagesEnvelope struct {
	Data  []domain.MessageLogEntry `json:"data"`
	Error string                   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
