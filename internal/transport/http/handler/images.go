package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ImageStore is the read/delete side of the photo audit store. Keys are
// "<chatID>/<imageID>" as logged in the message log when a photo is
// uploaded.
type ImageStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ImageHandler serves and prunes the audit copies of ticket photos.
type ImageHandler struct {
	store ImageStore
}

func NewImageHandler(store ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

func imageKey(r *http.Request) (string, bool) {
	chatID := chi.URLParam(r, "chatID")
	imageID := chi.URLParam(r, "imageID")
	if _, err := strconv.ParseInt(chatID, 10, 64); err != nil || imageID == "" {
		return "", false
	}
	return chatID + "/" + imageID, true
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := imageKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid image key")
		return
	}
	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer body.Close()

	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := imageKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid image key")
		return
	}
	if err := h.store.Delete(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, "could not delete image")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "deleted"})
}
