// Package render turns an assembled lesson into a shareable document.
package render

import (
	"regexp"
	"strings"

	"github.com/abhisek/teachme/internal/lesson"
)

// Formatter renders a lesson into a file format.
type Formatter interface {
	Format(l *lesson.Lesson) ([]byte, error)
	ContentType() string
	FileExtension() string
}

var (
	urlLineRe = regexp.MustCompile(`(?i)^https?://\S+$`)
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

type lineKind int

const (
	lineGap lineKind = iota
	lineImage
	lineText
)

type line struct {
	kind lineKind
	text string
}

// classify splits lesson content into lines: blank, image-only, or prose.
func classify(content string) []line {
	raw := strings.Split(content, "\n")
	out := make([]line, 0, len(raw))
	for _, r := range raw {
		s := strings.TrimSpace(r)
		switch {
		case s == "":
			out = append(out, line{kind: lineGap})
		case urlLineRe.MatchString(s):
			out = append(out, line{kind: lineImage, text: s})
		default:
			out = append(out, line{kind: lineText, text: s})
		}
	}
	return out
}

func title(l *lesson.Lesson) string {
	if t := strings.TrimSpace(l.Topic); t != "" {
		return t
	}
	return "Lesson"
}
