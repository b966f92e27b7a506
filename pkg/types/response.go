package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// SuccessResult is the standard body for mutation endpoints.
type SuccessResult struct {
	Success bool `json:"success"`
}
