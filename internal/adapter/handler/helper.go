package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quadworks/flowdeck/errors"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessWithStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging. Usecase
// sentinel errors are translated to their wire form first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	err = translateUsecaseError(err)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// translateUsecaseError maps usecase sentinel errors to AppErrors so
// one switch owns the HTTP status for each failure mode.
func translateUsecaseError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, usecaseErrors.ErrActionItemNotFound):
		return errors.ErrNotFound("Action item")
	case stdErrors.Is(err, usecaseErrors.ErrFlowNotFound):
		return errors.ErrNotFound("Flow")
	case stdErrors.Is(err, usecaseErrors.ErrDomainNotFound):
		return errors.ErrNotFound("Domain")
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrNotFound("User")
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")
	case stdErrors.Is(err, usecaseErrors.ErrEmptyReviewBatch):
		return errors.ErrInvalidArgument("Review batch must confirm all or carry at least one decision")
	case stdErrors.Is(err, usecaseErrors.ErrNoEligibleItems):
		return errors.AppError{
			HTTPCode: http.StatusUnprocessableEntity,
			Code:     errors.ErrorCode_MEETING_NO_ELIGIBLE_ITEMS,
			Message:  "No confirmed pending action items to propose follow-ups for",
		}
	case stdErrors.Is(err, usecaseErrors.ErrNoEligibleCandidates):
		return errors.AppError{
			HTTPCode: http.StatusUnprocessableEntity,
			Code:     errors.ErrorCode_ASSIGNMENT_NO_CANDIDATES,
			Message:  "No assignable people in domain",
		}
	case stdErrors.Is(err, usecaseErrors.ErrInvalidStage):
		return errors.ErrInvalidArgument("Invalid QUAD stage")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidFlowType):
		return errors.ErrInvalidArgument("Invalid flow type")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrForbidden("Access denied")
	}
	return err
}
