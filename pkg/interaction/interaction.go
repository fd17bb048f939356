// Package interaction defines the request and response shapes of the NPC
// interaction API. Every path through the engine produces a Response, even
// when the generation backend misbehaves.
package interaction

// Request is the inbound body of POST /interact/{npcId}.
type Request struct {
	Text string `json:"text"`
}

// Action is a structured instruction the generation backend may ask the
// world to perform. Validity is decided solely by the action executor's
// registry; the backend's output is untrusted.
type Action struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is the canonical interaction result. Action marshals as null
// when absent, matching the wire contract.
type Response struct {
	Dialogue    string         `json:"dialogue"`
	Action      *Action        `json:"action"`
	Metadata    map[string]any `json:"metadata"`
	ActionError string         `json:"actionError,omitempty"`
}

// DefaultDialogue is substituted when the backend returns no dialogue.
const DefaultDialogue = "No response"

// Normalize fills in defaults for missing fields so the response always
// carries the canonical three-field shape.
func (r *Response) Normalize() {
	if r.Dialogue == "" {
		r.Dialogue = DefaultDialogue
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
	if r.Action != nil && r.Action.Type == "" {
		r.Action = nil
	}
}
