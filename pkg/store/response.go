package store

// APIResponse is the uniform envelope every chat-store endpoint answers
// with. A response with Success false is a recoverable failure: the caller
// logs it and abandons just that operation.
type APIResponse[T any] struct {
	Success      bool     `json:"success"`
	ResponseCode int      `json:"responseCode"`
	Message      string   `json:"message,omitempty"`
	Data         T        `json:"data,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}
