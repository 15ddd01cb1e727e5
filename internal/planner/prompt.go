package planner

import (
	"fmt"
	"strings"
)

const plannerSystemPrompt = `You are a curriculum architect. You break a subject into logically sequenced subtopics for learners moving from basic to expert understanding.`

func buildTopicMessage(topic string, n int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Task: Break the broad topic **%s** into **%d** logically sequenced sub-topics.\n", topic, n))
	b.WriteString("Audience: Learners moving from basic to expert understanding.\n")
	writeOutputRules(&b, "Sub-topic A", "Sub-topic B")

	return b.String()
}

func buildSourceMessage(topic, source string, n, limit int) string {
	var b strings.Builder

	guidance := "based on the content of the document"
	if topic != "" {
		guidance = fmt.Sprintf("about the main topic: **%s**", topic)
	}

	b.WriteString(fmt.Sprintf("You have been provided with text content from a document %s.\n", guidance))
	b.WriteString(fmt.Sprintf("Task: Based *only* on the provided Text Content, identify and list **%d** logically sequenced sub-topics.\n", n))
	b.WriteString("Focus: The sub-topics must be directly covered in the Text Content. Do not invent sub-topics not present in the text.\n")
	writeOutputRules(&b, "Sub-topic A from text", "Sub-topic B from text")

	b.WriteString(fmt.Sprintf("\nText Content (first %d characters):\n---\n", limit))
	b.WriteString(Truncate(source, limit))
	b.WriteString("\n---\n")

	return b.String()
}

func writeOutputRules(b *strings.Builder, exampleA, exampleB string) {
	b.WriteString(`Output rules (very important):
1. Respond only with a valid JSON array of strings.
2. No numbering, no extra prose, just something like:
`)
	b.WriteString(fmt.Sprintf("   [%q, %q, ...]\n", exampleA, exampleB))
}
