package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/abhisek/teachme/internal/lesson"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	pdfFontName = "DejaVuSans"
)

// fontPaths are checked in order for a UTF-8 capable font.
var fontPaths = []string{
	"ttf/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// PDFFormatter renders a lesson as an A4 document. Images are listed as
// links since gofpdf cannot fetch remote files.
type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{fontPath: resolveFontPath()}
}

func resolveFontPath() string {
	for _, p := range fontPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (f *PDFFormatter) Format(l *lesson.Lesson) ([]byte, error) {
	pdf, fontName, tr := f.newDocument()
	pdf.SetTitle(title(l), true)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 20)
	pdf.MultiCell(0, 10, tr(title(l)), "", "", false)
	pdf.Ln(4)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	lineHeight *= 1.5

	for _, ln := range classify(l.Content) {
		switch ln.kind {
		case lineGap:
			pdf.Ln(lineHeight / 2)
		case lineImage:
			pdf.SetTextColor(30, 80, 200)
			pdf.WriteLinkString(lineHeight, tr("Illustration: "+ln.text), ln.text)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(lineHeight)
		default:
			pdf.MultiCell(0, lineHeight, tr(boldRe.ReplaceAllString(ln.text, "$1")), "", "", false)
		}
	}

	if len(l.Videos) > 0 {
		pdf.Ln(lineHeight)
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, lineHeight, tr("Related videos"))
		pdf.Ln(lineHeight)
		pdf.SetFont(fontName, "", 12)
		for _, v := range l.Videos {
			pdf.WriteLinkString(lineHeight, tr("- "+v.Title), v.URL)
			pdf.Ln(lineHeight)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// newDocument prefers the UTF-8 font and falls back to the Latin-1 core
// font when it cannot be loaded.
func (f *PDFFormatter) newDocument() (*gofpdf.Fpdf, string, func(string) string) {
	if f.fontPath != "" {
		if data, err := os.ReadFile(f.fontPath); err == nil {
			pdf := gofpdf.New("P", "mm", "A4", "")
			pdf.AddUTF8FontFromBytes(pdfFontName, "", data)
			pdf.AddUTF8FontFromBytes(pdfFontName, "B", data)
			if pdf.Err() {
				pdf.ClearError()
			} else {
				return pdf, pdfFontName, func(s string) string { return s }
			}
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	return pdf, "Arial", pdf.UnicodeTranslatorFromDescriptor("")
}

func (f *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (f *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
