package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/server/services"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// decode reads a JSON body into T. Unknown fields are accepted.
func decode[T any](body io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return v, err
		}
		return v, fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
	}
	return v, nil
}

// detail returns the text wrapped after sentinel, capitalised, or fallback
// when err carries no detail.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == err.Error() || msg == "" {
		return fallback
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// statusOf maps a service error to the HTTP status and the message shown to
// the caller.
func statusOf(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "Upload is too large."
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, detail(err, common.ErrorValidation, "Invalid request.")
	case errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusBadRequest, "Image uploads are not available."
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, detail(err, common.ErrorAlreadyExists, "Already exists.")
	case errors.Is(err, common.ErrInvalidCode):
		return http.StatusUnauthorized, "Invalid or expired code."
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, "Session expired. Please sign in again."
	}
	return http.StatusInternalServerError, "Internal server error."
}
