package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dperales2022/atmirasalesproposals/types"
)

const (
	FormatDOCX = "docx"

	docxBodyPart = "word/document.xml"
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	mcNS         = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

var errNoDocumentPart = errors.New("zip has no " + docxBodyPart)

// DOCXInterpreter extracts the body text of a Word document as one segment.
// Paragraphs end with a newline; tabs and breaks are kept.
type DOCXInterpreter struct {
	maxPartBytes int64
}

func NewDOCXInterpreter(maxPartBytes int64) *DOCXInterpreter {
	return &DOCXInterpreter{maxPartBytes: maxPartBytes}
}

func (d *DOCXInterpreter) Name() string {
	return FormatDOCX
}

func (d *DOCXInterpreter) Interpret(content []byte) (*types.ParsedDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, errNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", docxBodyPart, err)
	}
	defer rc.Close()

	var src io.Reader = rc
	if d.maxPartBytes > 0 {
		src = io.LimitReader(rc, d.maxPartBytes)
	}
	text, err := bodyText(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxBodyPart, err)
	}

	doc := &types.ParsedDocument{Format: FormatDOCX}
	if text = cleanText(text); text != "" {
		doc.Segments = []string{text}
	}
	return doc, nil
}

// bodyText walks WordprocessingML tokens and keeps run text. Of an
// mc:AlternateContent block only the Choice branch is read; Fallback
// repeats the same text for older readers.
func bodyText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
		sawDoc bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == mcNS && t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				continue
			}
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "document":
				sawDoc = true
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	if !sawDoc {
		return "", errors.New("no w:document root")
	}
	return sb.String(), nil
}
