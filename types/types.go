package types

import "encoding/json"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message represents a single message in the instruction sequence
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExtractionResult is the model output for one variant, already validated
// against that variant's field contract.
type ExtractionResult struct {
	Variant string
	Model   string
	Fields  map[string]any
	Raw     json.RawMessage
}
