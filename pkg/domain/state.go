package domain

import "time"

// DocumentContext is the text recovered from the most recent upload.
type DocumentContext struct {
	RawText     string    `json:"rawText"`
	ExtractedAt time.Time `json:"extractedAt"`
	SourceName  string    `json:"sourceName"`
}

// ConversationState is the whole per-session chat state. Values returned from
// the store are copies and may be read without synchronization.
type ConversationState struct {
	History        []Message        `json:"history"`
	PendingRequest bool             `json:"pendingRequest"`
	Document       *DocumentContext `json:"document,omitempty"`
}

func (s ConversationState) Clone() ConversationState {
	out := ConversationState{
		History:        make([]Message, len(s.History)),
		PendingRequest: s.PendingRequest,
	}
	copy(out.History, s.History)

	if s.Document != nil {
		doc := *s.Document
		out.Document = &doc
	}

	return out
}
