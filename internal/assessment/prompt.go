package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

const assessmentSystemPrompt = `You are an expert learning coach. You compare a student's summary against the text they studied and give concise, constructive, actionable feedback as JSON.`

func buildInitialMessage(original, summary string) string {
	var b strings.Builder

	b.WriteString("Compare the student's summary against the original text and provide structured feedback.\n\n")
	writeTexts(&b, original, "Student's Summary", summary)

	b.WriteString(`First, evaluate if the summary demonstrates excellent understanding. A summary is excellent if it:
1. Captures all main points accurately
2. Shows clear comprehension of core concepts
3. Includes key details without significant omissions

`)
	b.WriteString("If the summary is excellent, respond with:\n")
	writeVerdict(&b, Excellent())
	b.WriteString(`
Otherwise, respond with:
{"correct_points": ["Points you've understood well", "Other strong aspects of your summary"], "missing_points": ["Specific concepts or details to add or clarify", "Areas where more depth would be helpful"]}

Rules:
1. If the summary is excellent, use the positive-only format
2. Otherwise, be specific about what needs improvement
3. Keep feedback constructive and actionable
4. Include 2-4 points in each category
5. Make points concise and clear
`)
	return b.String()
}

func buildResumingMessage(original, summary string, prior []string) string {
	var b strings.Builder

	b.WriteString("Review the student's revised summary. Check if the points that needed improvement have now been addressed.\n\n")
	writeTexts(&b, original, "Student's New Summary", summary)

	priorJSON, _ := json.MarshalIndent(prior, "", "  ")
	b.WriteString("Previous Points to Improve:\n")
	b.Write(priorJSON)
	b.WriteString(`

Task:
1. Check each previous point that needed improvement
2. Remove points that have now been adequately addressed
3. Keep points that still need work, copied exactly as written above

If ALL points have been addressed, respond with:
`)
	writeVerdict(&b, Complete())
	b.WriteString("\nIf some points remain, respond with:\n")
	writeVerdict(&b, Feedback{
		CorrectPoints: progressCorrect,
		MissingPoints: []string{"only include points from the original list that still need work"},
	})
	b.WriteString("\nEnsure the response is a valid JSON object with these exact keys.\n")
	return b.String()
}

func writeTexts(b *strings.Builder, original, summaryLabel, summary string) {
	b.WriteString(fmt.Sprintf("Original Text:\n---\n%s\n---\n\n", original))
	b.WriteString(fmt.Sprintf("%s:\n---\n%s\n---\n\n", summaryLabel, summary))
}

func writeVerdict(b *strings.Builder, f Feedback) {
	out, _ := json.Marshal(f)
	b.Write(out)
	b.WriteString("\n")
}
