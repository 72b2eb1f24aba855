package types

// Result is the outcome of one command invocation.
//
// Error is either a plain string (listing, reading, inspecting, executing) or
// a structured object with message and code (mutations), matching the shape
// the frontend already discriminates on.
type Result struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// Ok wraps a successful payload
func Ok(data any) *Result {
	return &Result{Success: true, Data: data}
}

// Fail wraps a failure payload
func Fail(err any) *Result {
	return &Result{Success: false, Error: err}
}

// Failure wraps a plain-message failure
func Failure(message string) *Result {
	return Fail(message)
}
