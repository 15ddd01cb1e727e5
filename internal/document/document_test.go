package document

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/googleapis/gax-go/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"notes.PDF", "", MimePDF},
		{"readme.md", "", MimeMarkdown},
		{"chapter.txt", "", MimeText},
		{"upload", "%PDF-1.7\n...", MimePDF},
		{"upload", "Plain words here.", MimeText},
		{"photo.png", "", "image/png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectType(tt.name, []byte(tt.data)), tt.name)
	}
}

func TestNew(t *testing.T) {
	doc, err := New("a.txt", "text/plain; charset=utf-8", []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, MimeText, doc.MimeType)

	doc, err = New("scan.pdf", "application/octet-stream", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, MimePDF, doc.MimeType)

	_, err = New("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestPlainText(t *testing.T) {
	doc := Document{Name: "a.txt", MimeType: MimeText, Data: []byte("\ufeffLine one\r\nLine two\xff")}
	assert.Equal(t, "Line one\nLine two", PlainText{}.ExtractText(context.Background(), doc))

	pdf := Document{Name: "a.pdf", MimeType: MimePDF, Data: []byte("%PDF")}
	assert.Empty(t, PlainText{}.ExtractText(context.Background(), pdf))
}

type staticExtractor string

func (s staticExtractor) ExtractText(context.Context, Document) string { return string(s) }

func TestChain(t *testing.T) {
	c := Chain{staticExtractor(""), staticExtractor("  "), nil, staticExtractor("found"), staticExtractor("later")}
	assert.Equal(t, "found", c.ExtractText(context.Background(), Document{}))
	assert.Empty(t, Chain{}.ExtractText(context.Background(), Document{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, c.ExtractText(ctx, Document{}))
}

type fakeProcessClient struct {
	req  *documentaipb.ProcessRequest
	resp *documentaipb.ProcessResponse
	err  error
}

func (f *fakeProcessClient) ProcessDocument(_ context.Context, req *documentaipb.ProcessRequest, _ ...gax.CallOption) (*documentaipb.ProcessResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeProcessClient) Close() error { return nil }

func TestDocumentAI(t *testing.T) {
	fake := &fakeProcessClient{resp: &documentaipb.ProcessResponse{
		Document: &documentaipb.Document{Text: "Chapter 1: Cells"},
	}}
	name := processorName("proj", "eu", "proc123")
	d := newDocumentAI(fake, name, nil)

	doc := Document{Name: "bio.pdf", MimeType: MimePDF, Data: []byte("%PDF-1.4 data")}
	assert.Equal(t, "Chapter 1: Cells", d.ExtractText(context.Background(), doc))

	require.NotNil(t, fake.req)
	assert.Equal(t, "projects/proj/locations/eu/processors/proc123", fake.req.GetName())
	assert.Equal(t, MimePDF, fake.req.GetRawDocument().GetMimeType())
	assert.Equal(t, doc.Data, fake.req.GetRawDocument().GetContent())

	fake.err = errors.New("permission denied")
	assert.Empty(t, d.ExtractText(context.Background(), doc))

	assert.Empty(t, d.ExtractText(context.Background(), Document{MimeType: MimeText, Data: []byte("x")}))
}

func TestNewDocumentAI_RequiresIDs(t *testing.T) {
	_, err := NewDocumentAI(context.Background(), DocumentAIConfig{ProjectID: "p"}, nil)
	require.Error(t, err)
}

func TestPDFToText(t *testing.T) {
	p := NewPDFToText(nil)
	if p == nil {
		assert.Empty(t, p.ExtractText(context.Background(), Document{MimeType: MimePDF, Data: []byte("x")}))
		t.Skip("pdftotext not installed")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(40, 10, "Mitochondria are the powerhouse")
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	text := p.ExtractText(context.Background(), Document{Name: "gen.pdf", MimeType: MimePDF, Data: buf.Bytes()})
	assert.True(t, strings.Contains(text, "Mitochondria"), "got %q", text)

	assert.Empty(t, p.ExtractText(context.Background(), Document{Name: "bad.pdf", MimeType: MimePDF, Data: []byte("not a pdf")}))
}
