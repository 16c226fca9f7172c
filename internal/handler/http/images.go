package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/store"
	"github.com/placerhq/placer-server/models"
)

const (
	// imagePathPrefix is both the URL prefix images are served under and
	// the storage prefix they are saved with.
	imagePathPrefix = "uploads/images"

	// maxImageBytes caps the size of a single uploaded image.
	maxImageBytes = 500_000

	// maxMultipartMemory bounds the in-memory portion of multipart parsing.
	maxMultipartMemory = 5 << 20
)

// allowedImageExtensions whitelists upload file types by extension.
var allowedImageExtensions = map[string]string{
	".png":  ".png",
	".jpg":  ".jpg",
	".jpeg": ".jpg",
}

// saveUpload reads the "image" part of an already parsed multipart form,
// stores it under a freshly generated name, and returns the stored path.
//
// Any rejection (missing part, unsupported type, oversized file) is
// reported as the uniform 422 invalid-inputs error.
func (h *Handler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", models.WrapHTTPError(err, msgInvalidInputs, http.StatusUnprocessableEntity)
	}
	defer file.Close()

	ext, ok := allowedImageExtensions[strings.ToLower(path.Ext(header.Filename))]
	if !ok {
		return "", models.NewHTTPError(msgInvalidInputs, http.StatusUnprocessableEntity)
	}

	if header.Size > maxImageBytes {
		return "", models.NewHTTPError(msgInvalidInputs, http.StatusUnprocessableEntity)
	}

	name := fmt.Sprintf("%s/%s%s", imagePathPrefix, uuid.NewString(), ext)
	if err := h.images.Save(r.Context(), name, file, header.Size); err != nil {
		return "", models.WrapHTTPError(err,
			"Could not save uploaded image, please try again", http.StatusInternalServerError)
	}

	return name, nil
}

// removeUploadAsync discards a stored upload in the background after the
// request that saved it has failed. Errors are logged and never surfaced.
func (h *Handler) removeUploadAsync(log *logger.Logger, name string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.images.Delete(ctx, name); err != nil {
			log.Err(err).Str("image", name).Msg("failed to remove orphaned upload")
		}
	}()
}

// serveImage streams a stored image back to the client.
func (h *Handler) serveImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	file := chi.URLParam(r, "file")

	reader, err := h.images.Open(r.Context(), path.Join(imagePathPrefix, file))
	if err != nil {
		if errors.Is(err, store.ErrImageNotFound) {
			writeError(w, r, models.WrapHTTPError(err,
				"Could not find this route", http.StatusNotFound))
			return
		}
		writeError(w, r, err)
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(path.Ext(file)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	if _, err := io.Copy(w, reader); err != nil {
		log.Err(err).Str("file", file).Msg("streaming image failed")
	}
}
