package model

// Response is the envelope for every JSON endpoint.
type Response struct {
	Data    any     `json:"data,omitempty"`
	Error   *string `json:"error,omitempty"`
	Message string  `json:"message"`
}

// ErrorResponse builds an envelope carrying only an error message.
func ErrorResponse(errMsg string) Response {
	return Response{
		Error:   &errMsg,
		Message: "Error",
	}
}

// SuccessResponse wraps data in a success envelope.
func SuccessResponse(data any) Response {
	return Response{
		Data:    data,
		Message: "Success",
	}
}
