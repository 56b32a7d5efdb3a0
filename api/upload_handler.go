package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/services"
	"github.com/rs/zerolog/log"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, contentType string, size int64, body io.Reader) (string, error)
}

type uploadHandler struct {
	responder Responder
	uploader  Uploader
}

func newUploadHandler(uploader Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	return uploadHandler{responder: NewResponder(logger), uploader: uploader}
}

// uploadImage accepts a multipart "file" field
// @Summary Upload image
// @Tags Uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Success 201 {object} UploadResponse
// @Failure 503 {object} ErrorResponse "storage not configured"
// @Router /api/uploads [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewUnavailableError("image storage is not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+1<<20)
		if err := r.ParseMultipartForm(services.MaxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("expected a multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		url, err := h.uploader.Upload(r.Context(), header.Header.Get("Content-Type"), header.Size, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, UploadResponse{URL: url})
	}
}
