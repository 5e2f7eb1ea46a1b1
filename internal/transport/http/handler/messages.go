package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

const defaultMessageLimit = 50

// MessageLog is the read side of the audit log.
type MessageLog interface {
	ListByChat(ctx context.Context, chatID int64, limit int32) ([]domain.MessageLogEntry, error)
}

// MessageHandler serves the audit log for a chat, newest first.
type MessageHandler struct {
	log MessageLog
}

func NewMessageHandler(log MessageLog) *MessageHandler {
	return &MessageHandler{log: log}
}

func (h *MessageHandler) ListByChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	limit := int32(defaultMessageLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = int32(n)
	}

	entries, err := h.log.ListByChat(r.Context(), chatID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read message log")
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Data: entries})
}
