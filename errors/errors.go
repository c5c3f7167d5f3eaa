package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/livepeer/vod-edge/log"
)

// Sentinel errors used to classify failures from the external collaborators.
// Wrap with %w and match with errors.Is.
var (
	// ObjectNotFoundError marks an object-store fetch that failed because the
	// key does not exist yet. For the recording descriptor this is the normal
	// race with the recording-start notification, not a fault.
	ObjectNotFoundError = errors.New("object not found")

	// ExternalServiceError marks a liveness query or object fetch that failed
	// for any reason other than the key being absent. Fatal for the request.
	ExternalServiceError = errors.New("external service error")
)

type apiError struct {
	Msg    string `json:"message"`
	Status int    `json:"status"`
	Err    error  `json:"-"`
}

func writeHttpError(w http.ResponseWriter, msg string, status int, err error) apiError {
	var errorDetail string
	if err != nil {
		errorDetail = err.Error()
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg, "error_detail": errorDetail}); err != nil {
		log.LogNoRequestID("error writing HTTP error", "http_error_msg", msg, "error", err)
	}

	return apiError{msg, status, err}
}

// HTTP Errors
func WriteHTTPBadRequest(w http.ResponseWriter, msg string, err error) apiError {
	return writeHttpError(w, msg, http.StatusBadRequest, err)
}

func WriteHTTPNotFound(w http.ResponseWriter, msg string, err error) apiError {
	return writeHttpError(w, msg, http.StatusNotFound, err)
}

func WriteHTTPInternalServerError(w http.ResponseWriter, msg string, err error) apiError {
	return writeHttpError(w, msg, http.StatusInternalServerError, err)
}
