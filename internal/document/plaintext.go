package document

import (
	"context"
	"strings"
)

// PlainText handles text and markdown uploads.
type PlainText struct{}

func (PlainText) ExtractText(_ context.Context, doc Document) string {
	if doc.MimeType != MimeText && doc.MimeType != MimeMarkdown {
		return ""
	}
	text := strings.ToValidUTF8(string(doc.Data), "")
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n")
}
