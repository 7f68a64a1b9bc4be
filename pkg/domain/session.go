package domain

import "time"

// Session is the durable snapshot of one serve-mode dialogue walk: where
// the walk is and what the script has written into session-scoped state.
type Session struct {
	// Cursor is the key to resume from on the next call.
	Cursor string `json:"cursor"`

	// Vars holds the session's script-visible variables.
	Vars map[string]any `json:"vars"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session positioned at the given key.
func NewSession(cursor string) *Session {
	return &Session{
		Cursor:    cursor,
		Vars:      make(map[string]any),
		UpdatedAt: time.Now().UTC(),
	}
}
