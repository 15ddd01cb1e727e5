// Package descriptor implements the inline image-placeholder protocol that
// lesson text uses to ask for an illustration:
//
//	[image_descriptor_start] water cycle diagram [image_descriptor_end]
//
// Markers match case-insensitively and a block may span newlines. Text
// between the markers that itself contains a marker string is not
// supported; there is no escaping.
package descriptor

import (
	"regexp"
	"strings"
)

const (
	StartMarker = "[image_descriptor_start]"
	EndMarker   = "[image_descriptor_end]"
)

var blockRe = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(StartMarker) + `(.*?)` + regexp.QuoteMeta(EndMarker))

// Extract returns the trimmed inner text of every block, left to right.
// The result is never nil.
func Extract(text string) []string {
	matches := blockRe.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// Substitute replaces the Nth block with "\n" + values[N] + "\n". Blocks
// beyond len(values) are removed; surplus values are ignored.
func Substitute(text string, values []string) string {
	return replace(text, func(i int) (string, bool) {
		if i < len(values) {
			return values[i], true
		}
		return "", false
	})
}

// SubstituteSlots is Substitute with one value per block position: an empty
// value removes its own block without shifting the values after it.
func SubstituteSlots(text string, slots []string) string {
	return replace(text, func(i int) (string, bool) {
		if i < len(slots) && slots[i] != "" {
			return slots[i], true
		}
		return "", false
	})
}

func replace(text string, value func(i int) (string, bool)) string {
	i := 0
	return blockRe.ReplaceAllStringFunc(text, func(string) string {
		v, ok := value(i)
		i++
		if !ok {
			return ""
		}
		return "\n" + v + "\n"
	})
}

// Strip removes every block.
func Strip(text string) string {
	return blockRe.ReplaceAllString(text, "")
}

// Count returns the number of blocks in text.
func Count(text string) int {
	return len(blockRe.FindAllStringIndex(text, -1))
}
