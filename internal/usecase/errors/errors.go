package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Meeting / review errors
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrActionItemNotFound = errors.New("action item not found")
	ErrEmptyReviewBatch   = errors.New("review batch contains no decisions")
	ErrNoEligibleItems    = errors.New("no confirmed pending action items")
)

// Flow errors
var (
	ErrFlowNotFound    = errors.New("flow not found")
	ErrDomainNotFound  = errors.New("domain not found")
	ErrInvalidStage    = errors.New("invalid QUAD stage")
	ErrInvalidFlowType = errors.New("invalid flow type")
)

// Assignment errors
var (
	ErrNoEligibleCandidates = errors.New("no eligible candidates in domain")
)

// User errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserNotActive = errors.New("user is not active")
)
