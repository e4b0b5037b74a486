package storage

import "evmconfirm/internal/txview"

// Frame is one snapshot of the confirmation screen. Event is set when the
// frame was produced by a send lifecycle event.
type Frame struct {
	RunID       string                   `json:"run_id"`
	Seq         int                      `json:"seq"`
	SendEnabled bool                     `json:"send_enabled"`
	ErrorText   string                   `json:"error_text,omitempty"`
	Sections    []txview.SectionViewItem `json:"sections,omitempty"`
	Event       *Event                   `json:"event,omitempty"`
}

// Event is the serialized form of a send event.
type Event struct {
	Kind    string `json:"kind"`
	Hash    string `json:"hash,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewEvent converts a view model send event.
func NewEvent(e txview.SendEvent) *Event {
	out := &Event{Kind: e.Kind.String(), Message: e.Message}
	if e.Kind == txview.SendEventSuccess {
		out.Hash = e.Hash.Hex()
	}
	return out
}

// Storage defines a sink for rendered frames.
type Storage interface {
	PutFrameBatch(frames []Frame) error
}
