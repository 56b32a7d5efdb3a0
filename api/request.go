package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/errs"
)

// serverOwnedFields are never taken from a request body.
var serverOwnedFields = []string{"id", "created_at", "updated_at"}

// decodeBody reads a JSON object and applies it onto target. Only the
// fields present in the body are written, which is what gives PATCH its
// partial update semantics. An empty body counts as {}.
func decodeBody(r *http.Request, target any, entity string) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewBadRequestError("failed to read request body")
	}

	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return errs.NewMalformedPayloadError(entity, err)
	}
	for _, name := range serverOwnedFields {
		delete(fields, name)
	}

	cleaned, err := json.Marshal(fields)
	if err != nil {
		return errs.NewMalformedPayloadError(entity, err)
	}
	if err := json.Unmarshal(cleaned, target); err != nil {
		return errs.NewMalformedPayloadError(entity, err)
	}
	return nil
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing id")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid id")
	}
	return id, nil
}
