package dto

// Response is the success envelope. Failures use apierrors.JsonErr.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}
