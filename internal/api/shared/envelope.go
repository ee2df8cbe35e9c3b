package shared

import "net/http"

// StatusSuccess is the status field of every success envelope.
const StatusSuccess = "success"

// Envelope wraps every successful response body.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewEnvelope builds a success envelope. A nil data value is encoded as null.
func NewEnvelope(data any, message string) Envelope {
	return Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// RespondWithEnvelope writes data wrapped in a success envelope.
func RespondWithEnvelope(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	RespondWithJSON(w, r, status, NewEnvelope(data, message))
}
