// Package httputil provides JSON request/response helpers and middleware for
// the frame server.
//
// Handlers write responses through [RespondJSON] and [RespondError] so error
// codes map to HTTP status codes in one place, and read request bodies
// through [DecodeJSON] which enforces a size limit.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/forcefield/pkg/errors"
)

// MaxBodySize caps request bodies. Graph uploads beyond this are rejected
// rather than buffered.
const MaxBodySize = 8 << 20 // 8 MiB

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as a JSON error response, mapping the error code
// to an HTTP status.
func RespondError(w http.ResponseWriter, err error) {
	RespondJSON(w, StatusForError(err), ErrorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// StatusForError maps an error code to an HTTP status code.
func StatusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTheme,
		errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeGraphNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads the request body, enforcing MaxBodySize, and unmarshals
// it into dst.
func DecodeJSON(r *http.Request, dst any) error {
	data, err := ReadBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

// ReadBody reads the full request body, enforcing MaxBodySize.
func ReadBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading request body")
	}
	if len(data) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodySize)
	}
	return data, nil
}
