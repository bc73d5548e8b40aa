package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"learnlens/errs"
)

const (
	MimePlainText = "text/plain"
	MimePDF       = "application/pdf"
	MimeDoc       = "application/msword"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Extractor turns uploaded file bytes into plain text, dispatching on MIME type
type Extractor struct {
	log *zap.Logger
}

// New creates a new Extractor
func New(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// Supported reports whether a MIME type can be extracted
func Supported(mimeType string) bool {
	switch mimeType {
	case MimePlainText, MimePDF, MimeDoc, MimeDocx:
		return true
	}
	return false
}

// Extract returns the text content of the file. It fails with
// errs.ErrUnsupportedType for unknown MIME types, errs.ErrExtraction when a
// supported file cannot be read, and errs.ErrNoContent when the result is
// empty or whitespace-only.
func (e *Extractor) Extract(data []byte, mimeType, filename string) (string, error) {
	e.log.Info("extracting text",
		zap.String("filename", filename),
		zap.String("mimeType", mimeType),
		zap.Int("sizeBytes", len(data)),
	)

	var (
		text string
		err  error
	)
	switch mimeType {
	case MimePlainText:
		text = string(data)
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDocx:
		text, err = extractDocx(data)
	case MimeDoc:
		// Legacy .doc has no parser here; salvage whatever reads as text
		text = salvageText(data)
	default:
		return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errs.ErrExtraction, filename, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", errs.ErrNoContent
	}

	e.log.Info("extraction complete",
		zap.String("filename", filename),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractDocx pulls the text runs out of word/document.xml. A .docx is a zip
// of WordprocessingML; visible text lives in <w:t> elements and paragraphs
// end at </w:p>.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}
	defer docXML.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(docXML)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// salvageText keeps printable runes and drops everything else
func salvageText(data []byte) string {
	var sb strings.Builder
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
