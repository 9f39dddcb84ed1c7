package types

import "strings"

// RawDocument holds fetched bytes. It never leaves the fetch/parse boundary.
type RawDocument struct {
	Location    string
	Content     []byte
	ContentType string // transport header, informational only
}

// ParsedDocument is the text of a document after a format interpreter ran.
type ParsedDocument struct {
	Segments []string // page boundaries are collapsed, so usually one segment
	Format   string   // interpreter that accepted the bytes
	Pages    int      // 0 when unknown
}

// Empty reports whether parsing produced no text at all.
func (d *ParsedDocument) Empty() bool {
	return d == nil || len(d.Segments) == 0
}

// Text joins all segments into the single blob handed to the model.
func (d *ParsedDocument) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Segments, "\n\n")
}
