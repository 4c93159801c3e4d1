package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quadworks/flowdeck/errors"
	meetingdto "github.com/quadworks/flowdeck/internal/adapter/dto/meeting"
	"github.com/quadworks/flowdeck/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
	meetinguse "github.com/quadworks/flowdeck/internal/usecase/meeting"
	"github.com/quadworks/flowdeck/internal/usecase/review"
)

// Meeting handles the review and proposal endpoints of the meeting
// pipeline.
type Meeting struct {
	svc    *meetinguse.Service
	logger *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(svc *meetinguse.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// GetReview returns the review state of a meeting
// @Summary      Get meeting review
// @Description  Returns the meeting, its extracted action items, existing follow-up proposals, and the review summary
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Review state"
// @Failure      401  {object}  map[string]interface{}  "User not authenticated"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/review [get]
func (h *Meeting) GetReview(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	rv, err := h.svc.GetReview(c.Request().Context(), actor, meetingID)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.NewMeetingReviewResponse(rv))
}

// ApplyReview applies a review batch to a meeting's action items
// @Summary      Review action items
// @Description  Applies a confirm-all or a batch of per-item confirm/reject decisions and recomputes the meeting's MOM status
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Meeting ID (UUID)"
// @Param        request  body      meetingdto.ApplyReviewRequest   true  "Review batch"
// @Success      200      {object}  map[string]interface{}  "Review outcome"
// @Failure      400      {object}  map[string]interface{}  "Empty batch or invalid payload"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/review [post]
func (h *Meeting) ApplyReview(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	var req meetingdto.ApplyReviewRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	input := review.ApplyReviewInput{
		ConfirmAll: req.ConfirmAll,
		Notes:      req.Notes,
	}
	for _, d := range req.Items {
		itemID, err := uuid.Parse(d.ItemID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid item ID").WithDetail("item_id", d.ItemID))
		}
		input.Items = append(input.Items, review.Decision{
			ItemID:     itemID,
			Confirm:    d.Confirm,
			Reject:     d.Reject,
			EditedText: d.EditedText,
		})
	}

	outcome, err := h.svc.ApplyReview(c.Request().Context(), actor, meetingID, input)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ReviewOutcomeResponse{
		Results:             outcome.Results,
		UnreviewedRemaining: outcome.UnreviewedRemaining,
		MomStatus:           string(outcome.MomStatus),
	})
}

// GenerateFollowUps creates follow-up proposals for a meeting
// @Summary      Generate follow-up proposals
// @Description  Converts confirmed pending action items into scored follow-up proposals with suggested assignees
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Generated proposals"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      422  {object}  map[string]interface{}  "No eligible action items"
// @Router       /meetings/{id}/followups [post]
func (h *Meeting) GenerateFollowUps(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	proposals, err := h.svc.GenerateFollowUps(c.Request().Context(), actor, meetingID)
	if err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		case stdErrors.Is(err, usecaseErrors.ErrNoEligibleItems):
			return HandleError(h.logger, c, errors.ErrNoEligibleItems(meetingID.String()))
		}
		return HandleError(h.logger, c, errors.ErrFollowUpGenerationFailed(meetingID.String(), err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_id": meetingID.String(),
		"proposals":  proposals,
	})
}

// GetMinutesURL returns a download link for the exported minutes
// @Summary      Get minutes download link
// @Description  Returns a short-lived presigned URL for the confirmed minutes-of-meeting document
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Presigned URL"
// @Failure      404  {object}  map[string]interface{}  "Meeting or minutes document not found"
// @Router       /meetings/{id}/minutes [get]
func (h *Meeting) GetMinutesURL(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	url, err := h.svc.MinutesURL(c.Request().Context(), actor, meetingID)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meetingdto.MinutesURLResponse{URL: url})
}
