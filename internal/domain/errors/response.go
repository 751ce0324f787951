package errors

// ErrorInfo contains detailed error information carried in API responses.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g. "ITEM_NOT_FOUND"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the unified API response envelope shared by the success and
// error paths of the delivery layer.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
