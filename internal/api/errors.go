package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/pngme/pkg/png"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrImageNotFound  = errors.New("image not found")
	ErrImageTooLarge  = errors.New("image too large")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// classify maps an error to its HTTP status and error type.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrImageNotFound), errors.Is(err, png.ErrChunkNotFound):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "invalid_request_error"
	case errors.Is(err, png.ErrInvalidUTF8):
		return http.StatusUnprocessableEntity, "invalid_payload_error"
	case errors.Is(err, png.ErrInvalidSignature),
		errors.Is(err, png.ErrTruncatedInput),
		errors.Is(err, png.ErrInvalidChunkLength),
		errors.Is(err, png.ErrInvalidChunkCRC):
		return http.StatusBadRequest, "invalid_png_error"
	case errors.Is(err, png.ErrInvalidTagBytes), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
