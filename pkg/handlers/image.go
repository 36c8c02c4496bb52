package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"storefront/pkg/blob"
)

const (
	msgImageNotFound = "Image not found"

	// room for multipart boundaries and headers on top of the file
	multipartOverhead = 1 << 20
	cacheForever      = "public, max-age=31536000, immutable"
)

// UploadRecorder counts stored uploads.
type UploadRecorder interface {
	Upload(size int64)
}

type ImageHandler struct {
	Service  blob.ServiceImage
	MaxBytes int64
	Uploads  UploadRecorder
	Logger   *slog.Logger
}

func NewImageHandler(service blob.ServiceImage, maxBytes int64, uploads UploadRecorder, logger *slog.Logger) *ImageHandler {
	if maxBytes <= 0 {
		maxBytes = blob.DefaultMaxBytes
	}
	return &ImageHandler{
		Service:  service,
		MaxBytes: maxBytes,
		Uploads:  uploads,
		Logger:   logger,
	}
}

func (h *ImageHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	// a malformed id can never name a stored image
	case errors.Is(err, blob.ErrNotFound), errors.Is(err, blob.ErrInvalidID):
		writeError(w, http.StatusNotFound, msgImageNotFound)
	default:
		writeFailure(w, h.Logger, op, err)
	}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum %dMB", h.MaxBytes>>20))
			return
		}
		h.Logger.Debug("upload without file", "error", err)
		writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}
	defer file.Close()

	uploaded, err := h.Service.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.fail(w, "upload image", err)
		return
	}

	if h.Uploads != nil {
		h.Uploads.Upload(header.Size)
	}
	if ok := writeJSON(w, h.Logger, http.StatusOK, uploaded); ok {
		h.Logger.Info("image uploaded", "id", uploaded.ID, "filename", uploaded.Filename, "backend", uploaded.Type)
	}
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Service.Open(r.Context(), mux.Vars(r)[muxVarID])
	if err != nil {
		h.fail(w, "open image", err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Cache-Control", cacheForever)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", obj.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.Logger.Error("stream image", "error", err, "id", obj.ID)
	}
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[muxVarID]

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete image", err)
		return
	}

	if ok := writeMessage(w, h.Logger, "Image deleted successfully"); ok {
		h.Logger.Info("image deleted", "id", id)
	}
}
