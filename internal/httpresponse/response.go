package httpresponse

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"chess_trainer/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   T   `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// WriteResponseWithStatus wraps body into the Status/Body envelope.
func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := json.Marshal(Response[any]{Status: status, Body: body})
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func WriteErrorResponse(w http.ResponseWriter, status int, description string) {
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: description})
}

// WriteError picks the status from the error kind. Internal details of 5xx
// errors are not sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		WriteInternalErrorResponse(w)
		return
	}
	WriteErrorResponse(w, status, err.Error())
}

func StatusFromError(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrEmptyCandidateSet),
		stderrors.Is(err, errors.ErrInvalidEvaluation),
		stderrors.Is(err, errors.ErrInvalidColor),
		stderrors.Is(err, errors.ErrMoveNotInCandidates),
		stderrors.Is(err, errors.ErrInvalidPage),
		stderrors.Is(err, errors.ErrLineComplete):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrReviewNotFound),
		stderrors.Is(err, errors.ErrPuzzleNotFound),
		stderrors.Is(err, errors.ErrOpeningNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrOracleUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// like http.Error, but with a JSON content type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
