package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/abhisek/teachme/internal/lesson"
)

const (
	htmlContentType   = "text/html; charset=utf-8"
	htmlFileExtension = ".html"
)

var pageTmpl = template.Must(template.New("lesson").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; line-height: 1.45; max-width: 50rem; margin: 2rem auto; }
    img  { display: block; margin: 1rem auto; max-width: 100%; }
  </style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Blocks}}{{if .Image}}<img src="{{.Image}}" alt="illustration">
{{else if .Text}}<p>{{.Text}}</p>
{{else}}
{{end}}{{end}}{{if .Videos}}<h2>Related videos</h2>
<ul>
{{range .Videos}}  <li><a href="{{.URL}}">{{.Title}}</a>{{if .Duration}} ({{.Duration}}){{end}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type htmlBlock struct {
	Image string
	Text  template.HTML
}

type htmlPage struct {
	Title  string
	Blocks []htmlBlock
	Videos []lesson.Video
}

// HTMLFormatter renders image-only lines as <img>, **bold** as <strong>
// and everything else as escaped paragraphs.
type HTMLFormatter struct{}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

func (HTMLFormatter) Format(l *lesson.Lesson) ([]byte, error) {
	page := htmlPage{Title: title(l), Videos: l.Videos}
	for _, ln := range classify(l.Content) {
		switch ln.kind {
		case lineImage:
			page.Blocks = append(page.Blocks, htmlBlock{Image: ln.text})
		case lineText:
			page.Blocks = append(page.Blocks, htmlBlock{Text: proseHTML(ln.text)})
		default:
			page.Blocks = append(page.Blocks, htmlBlock{})
		}
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func (HTMLFormatter) ContentType() string {
	return htmlContentType
}

func (HTMLFormatter) FileExtension() string {
	return htmlFileExtension
}

// proseHTML escapes s and then turns **bold** spans into <strong>.
func proseHTML(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(boldRe.ReplaceAllString(escaped, "<strong>$1</strong>"))
}
