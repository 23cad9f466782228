package errors

// represents a standardized error response
type ErrorResponse struct {
	Error    string `json:"error"`              // error code (e.g., "unauthorized", "quota_exhausted")
	Message  string `json:"message"`            // user-friendly message
	Details  string `json:"details,omitempty"`  // optional details (sanitized in production)
	Redirect string `json:"redirect,omitempty"` // page the client should move to, if any
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// standard error codes
const (
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeValidationError  = "validation_error"
	CodeServerError      = "server_error"
	CodeBadRequest       = "bad_request"
	CodeTooManyRequests  = "too_many_requests"
	CodeMustAuthenticate = "must_authenticate"
	CodeQuotaExhausted   = "quota_exhausted"
	CodeEmptyPrompt      = "empty_prompt"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)
