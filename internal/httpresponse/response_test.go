package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "chess_trainer/internal/errors"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrEmptyCandidateSet, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", apperrors.ErrInvalidEvaluation), http.StatusBadRequest},
		{apperrors.ErrMoveNotInCandidates, http.StatusBadRequest},
		{apperrors.ErrReviewNotFound, http.StatusNotFound},
		{apperrors.ErrPuzzleNotFound, http.StatusNotFound},
		{apperrors.ErrOpeningNotFound, http.StatusNotFound},
		{apperrors.ErrLineComplete, http.StatusBadRequest},
		{apperrors.ErrInvalidPage, http.StatusBadRequest},
		{fmt.Errorf("analyse: %w", apperrors.ErrOracleUnavailable), http.StatusBadGateway},
		{apperrors.ErrInvalidDistribution, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]string{"move": "e4"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response[map[string]string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "e4", resp.Body["move"])
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("mongo: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "mongo")
	assert.True(t, json.Valid(rec.Body.Bytes()))
}
