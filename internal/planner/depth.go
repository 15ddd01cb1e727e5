package planner

import "strings"

// Depth names accepted by CountForDepth.
const (
	DepthBriefly  = "briefly"
	DepthThorough = "thorough"
	DepthAdvanced = "advanced"
)

var depthCounts = map[string]int{
	DepthBriefly:  3,
	DepthThorough: 7,
	DepthAdvanced: 10,
}

// CountForDepth maps a depth name to the number of subtopics to plan.
// Unknown or empty depths get the "briefly" count.
func CountForDepth(depth string) int {
	if n, ok := depthCounts[strings.ToLower(strings.TrimSpace(depth))]; ok {
		return n
	}
	return depthCounts[DepthBriefly]
}

// Truncate returns the first limit runes of s. A non-positive limit
// returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
