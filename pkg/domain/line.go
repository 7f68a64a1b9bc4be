package domain

// DialogueLine is the printable unit handed back to the host. Exactly one
// of the type-specific fields is meaningful, per Type; Responses is always
// non-nil (possibly empty).
type DialogueLine struct {
	Type      string             `json:"type"`
	NextID    string             `json:"next_id"`
	Character string             `json:"character,omitempty"`
	Dialogue  string             `json:"dialogue,omitempty"`
	Mutation  *Clause            `json:"mutation,omitempty"`
	Responses []DialogueResponse `json:"responses"`
}

// DialogueResponse is a single selectable option attached to a line.
type DialogueResponse struct {
	Prompt string `json:"prompt"`
	NextID string `json:"next_id"`
}
