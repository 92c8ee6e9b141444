package models

import "encoding/json"

// RequestKind is the closed set of request types the line-provider worker
// dispatches on. Anything else yields an error response, never a silent
// drop.
type RequestKind string

const (
	RequestAvailableEvents      RequestKind = "get_available_events"
	RequestAvailableEventDetail RequestKind = "get_available_event_detail"
)

// BetRequest is the body of a correlated request message. The correlation
// id itself travels as transport metadata, not here.
type BetRequest struct {
	Request RequestKind `json:"request"`
	EventID int64       `json:"event_id,omitempty"`
}

// ErrorResponse is the error variant of a correlated response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResponseError extracts the error string from a response body, if the body
// is the error variant.
func ResponseError(body json.RawMessage) (string, bool) {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return "", false
	}

	return errResp.Error, errResp.Error != ""
}

// StatusUpdateEvent is published fire-and-forget by the line-provider when
// an event reaches a terminal status.
type StatusUpdateEvent struct {
	EventID   int64       `json:"event_id"`
	NewStatus EventStatus `json:"new_status"`
}
