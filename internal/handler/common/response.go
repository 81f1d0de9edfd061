package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	ierr "dearmind-backend/internal/errors"

	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 8 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func RespondError(w http.ResponseWriter, message string, status int) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErr maps err onto the error taxonomy. Anything that is not a known
// client error is logged and reported as a generic 500.
func RespondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ierr.BadRequest):
		RespondError(w, ierr.Message(err, "bad request"), http.StatusBadRequest)
	case errors.Is(err, ierr.Unauthorized):
		RespondError(w, ierr.Message(err, "unauthorized"), http.StatusUnauthorized)
	case errors.Is(err, ierr.NotFound):
		RespondError(w, ierr.Message(err, "not found"), http.StatusNotFound)
	default:
		hlog.FromRequest(r).Error().Err(err).Msgf("%s %s failed", r.Method, r.URL.Path)
		RespondError(w, "internal server error", http.StatusInternalServerError)
	}
}

// DecodeJSON reads a JSON body into dst. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ierr.BadRequestf("request body is required")
		}
		return ierr.BadRequestf("invalid JSON body")
	}
	return nil
}
