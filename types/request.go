package types

// ExtractRequest is the JSON body accepted by the extract endpoint.
type ExtractRequest struct {
	PDFPath string `json:"pdfpath"`
	DocName string `json:"docname,omitempty"`
	Variant string `json:"variant,omitempty"`
}
