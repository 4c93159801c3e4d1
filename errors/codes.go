package errors

// ErrorCode identifies an application error condition independent of
// the HTTP status it maps to.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_VALIDATION_FAILED

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED

	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_NO_ELIGIBLE_ITEMS
	ErrorCode_REVIEW_FAILED

	ErrorCode_FLOW_NOT_FOUND
	ErrorCode_FLOW_INVALID_STAGE
	ErrorCode_FLOW_STAGE_UPDATE_FAILED

	ErrorCode_ASSIGNMENT_NO_CANDIDATES
	ErrorCode_FOLLOWUP_GENERATION_FAILED

	ErrorCode_DEPENDENCY_FAILURE
	ErrorCode_DB_TRANSACTION_FAILED
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED

	ErrorCode_HTTP_OK ErrorCode = 200
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                    "UNKNOWN",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:          "VALIDATION_FAILED",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NO_ELIGIBLE_ITEMS:  "MEETING_NO_ELIGIBLE_ITEMS",
	ErrorCode_REVIEW_FAILED:              "REVIEW_FAILED",
	ErrorCode_FLOW_NOT_FOUND:             "FLOW_NOT_FOUND",
	ErrorCode_FLOW_INVALID_STAGE:         "FLOW_INVALID_STAGE",
	ErrorCode_FLOW_STAGE_UPDATE_FAILED:   "FLOW_STAGE_UPDATE_FAILED",
	ErrorCode_ASSIGNMENT_NO_CANDIDATES:   "ASSIGNMENT_NO_CANDIDATES",
	ErrorCode_FOLLOWUP_GENERATION_FAILED: "FOLLOWUP_GENERATION_FAILED",
	ErrorCode_DEPENDENCY_FAILURE:         "DEPENDENCY_FAILURE",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_HTTP_OK:                    "OK",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
