package types

// MessageResponse is the body of every non-success response.
type MessageResponse struct {
	Message string `json:"message"`
}

// VariantInfo describes a registered schema variant without its instructions.
type VariantInfo struct {
	ID          string `json:"id"`
	Version     int    `json:"version"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type VariantsResponse struct {
	Default  string        `json:"default"`
	Variants []VariantInfo `json:"variants"`
}
