package response

// Envelope used by middleware responses.
type Body struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(code, message string, data interface{}) Body {
	return Body{Code: code, Message: message, Data: data}
}

func Error(code, message string, data interface{}) Body {
	return Body{Code: code, Message: message, Data: data}
}
