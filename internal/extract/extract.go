// Package extract turns an uploaded resume of any supported format into
// plain text. Empty or garbled text is a valid result; only structurally
// unreadable input of a declared-supported type is an error.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractionError reports input that claims a supported format but cannot be
// parsed at all.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// OCR recognizes text in an image file on disk.
type OCR interface {
	ImageText(path string) (string, error)
}

// Extractor converts resume uploads to plain text.
type Extractor struct {
	ocr OCR
}

// New constructs an Extractor backed by the Tesseract OCR engine.
func New() *Extractor {
	return &Extractor{ocr: tesseractOCR{}}
}

// NewWithOCR constructs an Extractor with a custom OCR implementation.
func NewWithOCR(ocr OCR) *Extractor {
	return &Extractor{ocr: ocr}
}

// Text extracts plain text from the payload. The format is chosen by file
// extension: .pdf and .docx are parsed, .jpg/.jpeg/.png go through OCR, and
// anything else is decoded as UTF-8 with invalid sequences dropped.
func (e *Extractor) Text(data []byte, fileName string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".pdf":
		return extractPDF(data)
	case ".jpg", ".jpeg", ".png":
		return e.extractImage(data, ext)
	case ".docx":
		return extractDOCX(data)
	default:
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages yielding no text contribute nothing.
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// extractImage runs OCR over a temporary on-disk copy of the upload. The
// copy is removed before returning, on success and failure alike.
func (e *Extractor) extractImage(data []byte, ext string) (string, error) {
	tmpPath := filepath.Join(os.TempDir(), "resume-"+uuid.NewString()+ext)
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return "", &ExtractionError{Format: "image", Err: err}
	}
	defer os.Remove(tmpPath)

	text, err := e.ocr.ImageText(tmpPath)
	if err != nil {
		return "", &ExtractionError{Format: "image", Err: err}
	}
	return text, nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
