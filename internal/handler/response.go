package handler

// Response is the envelope every endpoint replies with: a status
// discriminator plus either a payload or a human-readable message.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{Status: "success", Data: data}
}

// NewErrorResponse covers handler-level rejections (bad ids, malformed
// bodies). Errors attached with c.Error flow through the error
// middleware instead, which adds the trace id.
func NewErrorResponse(message string) *Response {
	return &Response{Status: "error", Message: message}
}
