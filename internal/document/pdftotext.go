package document

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// PDFToText shells out to poppler's pdftotext.
type PDFToText struct {
	bin     string
	timeout time.Duration
	log     *zap.Logger
}

// NewPDFToText returns nil when pdftotext is not on PATH.
func NewPDFToText(log *zap.Logger) *PDFToText {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PDFToText{bin: bin, timeout: 2 * time.Minute, log: log}
}

func (p *PDFToText) ExtractText(ctx context.Context, doc Document) string {
	if p == nil || doc.MimeType != MimePDF || len(doc.Data) == 0 {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "teachme_pdftotext_*")
	if err != nil {
		p.log.Warn("pdftotext temp dir", zap.Error(err))
		return ""
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	out := filepath.Join(tmpDir, "out.txt")
	if err := os.WriteFile(in, doc.Data, 0o600); err != nil {
		p.log.Warn("pdftotext write input", zap.Error(err))
		return ""
	}

	cmd := exec.CommandContext(callCtx, p.bin, "-enc", "UTF-8", "-q", in, out)
	if output, err := cmd.CombinedOutput(); err != nil {
		// Encrypted and malformed files land here.
		p.log.Warn("pdftotext failed",
			zap.String("document", doc.Name),
			zap.String("output", string(output)),
			zap.Error(err),
		)
		return ""
	}

	text, err := os.ReadFile(out)
	if err != nil {
		p.log.Warn("pdftotext read output", zap.Error(err))
		return ""
	}
	return string(text)
}
