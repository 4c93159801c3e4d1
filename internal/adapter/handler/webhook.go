package handler

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quadworks/flowdeck/errors"
	meetingdto "github.com/quadworks/flowdeck/internal/adapter/dto/meeting"
	"github.com/quadworks/flowdeck/internal/domain/entities"
	meetinguse "github.com/quadworks/flowdeck/internal/usecase/meeting"
	"github.com/quadworks/flowdeck/pkg/webhook"
)

// MinutesWebhook receives signed minutes payloads from the external
// transcription pipeline.
type MinutesWebhook struct {
	svc    *meetinguse.Service
	secret string
	logger *zap.Logger
}

// NewMinutesWebhook creates a new webhook handler
func NewMinutesWebhook(svc *meetinguse.Service, secret string, logger *zap.Logger) *MinutesWebhook {
	return &MinutesWebhook{svc: svc, secret: secret, logger: logger}
}

// HandleMinutes ingests a minutes payload
// @Summary      Ingest meeting minutes
// @Description  Accepts an HMAC-signed minutes payload and creates the meeting with its extracted action items in needs_review state
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Flowdeck-Signature  header    string                            true  "Hex HMAC-SHA256 of the raw body"
// @Param        request               body      meetingdto.IngestMinutesRequest  true  "Minutes payload"
// @Success      200  {object}  map[string]interface{}  "Meeting created"
// @Failure      400  {object}  map[string]interface{}  "Invalid payload"
// @Failure      401  {object}  map[string]interface{}  "Bad signature"
// @Router       /webhooks/minutes [post]
func (h *MinutesWebhook) HandleMinutes(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get("X-Flowdeck-Signature")
	if !webhook.VerifyHMAC(h.secret, body, signature) {
		if h.logger != nil {
			h.logger.Warn("webhook.minutes.bad_signature",
				zap.String("request_id", getRequestID(c)),
			)
		}
		return HandleError(h.logger, c, errors.ErrInvalidToken())
	}

	var req meetingdto.IngestMinutesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	domainID, err := uuid.Parse(req.DomainID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid domain ID"))
	}

	input := meetinguse.IngestInput{
		DomainID:      domainID,
		Title:         req.Title,
		Type:          req.Type,
		ScheduledAt:   req.ScheduledAt,
		Summary:       req.Summary,
		TranscriptURL: req.TranscriptURL,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, meetinguse.IngestItemInput{
			Description:     item.Description,
			SourceText:      item.SourceText,
			Speaker:         item.Speaker,
			Type:            entities.ActionItemType(item.Type),
			IsUncertain:     item.IsUncertain,
			UncertainReason: item.UncertainReason,
			AssigneeHint:    item.AssigneeHint,
			DueDate:         item.DueDate,
			AIConfidence:    item.AIConfidence,
		})
	}

	m, err := h.svc.IngestMinutes(c.Request().Context(), input)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("webhook.minutes.ingest_failed", zap.Error(err))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.IngestMinutesResponse{
		MeetingID:   m.ID.String(),
		MomStatus:   string(m.MomStatus),
		ActionItems: len(req.Items),
	})
}
