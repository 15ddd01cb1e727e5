// Package document extracts plain text from uploaded study material.
// Extraction never fails loudly: unreadable, encrypted or image-only
// documents produce an empty string.
package document

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Supported MIME types.
const (
	MimePDF      = "application/pdf"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"
)

// ErrUnsupportedType is returned for uploads that are neither PDF nor text.
var ErrUnsupportedType = errors.New("unsupported document type: only PDF and plain text are accepted")

// Document is an uploaded file.
type Document struct {
	Name     string
	MimeType string
	Data     []byte
}

// Extractor returns the text of a document, or "" when none is usable.
type Extractor interface {
	ExtractText(ctx context.Context, doc Document) string
}

// DetectType returns the MIME type of a file from its extension, falling
// back to content sniffing. Parameters such as charset are dropped.
func DetectType(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF
	case ".md", ".markdown":
		return MimeMarkdown
	case ".txt", ".text":
		return MimeText
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return baseType(t)
	}
	return baseType(http.DetectContentType(data))
}

// Supported reports whether mimeType can be extracted.
func Supported(mimeType string) bool {
	switch baseType(mimeType) {
	case MimePDF, MimeText, MimeMarkdown:
		return true
	}
	return false
}

// New validates the type of an upload and builds a Document.
func New(name, mimeType string, data []byte) (Document, error) {
	t := baseType(mimeType)
	if t == "" || t == "application/octet-stream" {
		t = DetectType(name, data)
	}
	if !Supported(t) {
		return Document{}, ErrUnsupportedType
	}
	return Document{Name: name, MimeType: t, Data: data}, nil
}

func baseType(t string) string {
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(t))
	}
	return mt
}

// Chain tries each extractor in order and returns the first non-empty text.
type Chain []Extractor

func (c Chain) ExtractText(ctx context.Context, doc Document) string {
	for _, e := range c {
		if e == nil {
			continue
		}
		if ctx.Err() != nil {
			return ""
		}
		if text := e.ExtractText(ctx, doc); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}
