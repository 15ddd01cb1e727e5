package llm

import "strings"

const fence = "```"

// StripCodeFence removes a surrounding markdown code fence from model
// output. A leading fence may carry a language tag ("```json"); the tag is
// dropped with it. Text without a fence is returned trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, fence) {
		rest := s[len(fence):]
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[i+1:]
		} else {
			rest = strings.TrimLeftFunc(rest, isTagRune)
		}
		s = rest
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

func isTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
