package errors

const (
	HttpInternalError      = "internal_error"
	HttpInvalidParamError  = "invalid_parameter"
	HttpInvalidPrefixError = "invalid_date_prefix"
	HttpInvalidSizeError   = "invalid_query_size"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
