package events

import (
	"encoding/json"
	"time"
)

const (
	TypePing                 = "ping"
	TypeApplicationSubmitted = "application_submitted"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ApplicationSubmitted is the payload of TypeApplicationSubmitted. It names
// the posting only; applicant details stay out of the stream.
type ApplicationSubmitted struct {
	JobID string `json:"job_id"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
