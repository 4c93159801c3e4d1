package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

func TestHandleError_UsecaseSentinelMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecaseErrors.ErrMeetingNotFound, http.StatusNotFound},
		{usecaseErrors.ErrFlowNotFound, http.StatusNotFound},
		{usecaseErrors.ErrEmptyReviewBatch, http.StatusBadRequest},
		{usecaseErrors.ErrNoEligibleItems, http.StatusUnprocessableEntity},
		{usecaseErrors.ErrNoEligibleCandidates, http.StatusUnprocessableEntity},
		{usecaseErrors.ErrInvalidStage, http.StatusBadRequest},
		{usecaseErrors.ErrInvalidFlowType, http.StatusBadRequest},
		{usecaseErrors.ErrUnauthorized, http.StatusUnauthorized},
		{usecaseErrors.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("database went away"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := HandleError(nil, c, tc.err); err != nil {
			t.Fatalf("%v: HandleError returned error: %v", tc.err, err)
		}
		if rec.Code != tc.code {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHandleError_WrappedSentinel(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := fmt.Errorf("loading review state: %w", usecaseErrors.ErrMeetingNotFound)
	if err := HandleError(nil, c, wrapped); err != nil {
		t.Fatalf("HandleError returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel should still map, got %d", rec.Code)
	}
}
