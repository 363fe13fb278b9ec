package models

// Machine-readable codes attached to error details.
const (
	CodeEmptyField       = "empty_field"
	CodeTooShort         = "too_short"
	CodeTooLong          = "too_long"
	CodeInvalidEmail     = "invalid_email"
	CodeMissingDigit     = "missing_digit"
	CodeMissingUppercase = "missing_uppercase"
	CodeInvalidFileType  = "invalid_file_type"
	CodeNotFound         = "not_found"
	CodePermissionDenied = "permission_denied"
	CodeConflict         = "conflict"
)

// ErrorDetail describes a single field-level failure.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"` // Offending field, when known
	Message string `json:"message"`         // Human-readable message
	Code    string `json:"code"`            // Machine-readable code
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	StatusCode int           `json:"status_code"`
	ErrorType  string        `json:"error_type"`
	Message    string        `json:"message"`
	Details    []ErrorDetail `json:"details,omitempty"`
}
