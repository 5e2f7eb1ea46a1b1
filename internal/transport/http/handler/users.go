package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hobbs-it/helpdesk-bot/internal/domain"
)

// UserDirectory is the slice of the verified-user store the ops API needs.
type UserDirectory interface {
	List(ctx context.Context) ([]domain.VerifiedUser, error)
	Delete(ctx context.Context, chatID int64) error
}

// UserHandler exposes the verified-user registry to operators: who has
// proven a corporate email, and forced logout.
type UserHandler struct {
	directory UserDirectory
}

func NewUserHandler(directory UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list verified users")
		return
	}
	writeJSON(w, http.StatusOK, VerifiedUsersEnvelope{Data: users})
}

// Delete revokes a chat's verification. The user re-verifies on their next
// flow, same as after a logout.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}
	if err := h.directory.Delete(r.Context(), chatID); err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete verified user")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "deleted"})
}
