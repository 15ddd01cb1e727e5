package lesson

import (
	"fmt"
	"strings"

	"github.com/abhisek/teachme/internal/descriptor"
	"github.com/abhisek/teachme/internal/planner"
)

const fragmentSystemPrompt = `You are an expert teacher and visual storyteller. You explain topics in a lively, analogy-driven way with depth, keeping paragraphs short and conversational.`

func buildFragmentMessage(subtopic string) string {
	var b strings.Builder

	b.WriteString("Task:\n")
	b.WriteString("Explain the topic below in a lively, analogy-driven way *with depth*.\n")
	b.WriteString("Insert an image descriptor **only** where a picture will materially enhance understanding ")
	b.WriteString("(e.g., a diagram, chart, or photo that clarifies the point). Use that image to explain the topic ")
	b.WriteString("and weave it into the explanation.\n")
	writeDescriptorRules(&b, "A URL search string for an image that will help explain the topic.")
	b.WriteString("You can also use multiple images to explain the topic better.\n")

	b.WriteString(`
Structure:
1. Open with a hook-analogy.
2. Build the core concepts step-by-step.
3. Explore deeper insights + common pitfalls.
`)
	b.WriteString(fmt.Sprintf("\nNow teach me about **%s**.\n", subtopic))

	return b.String()
}

func buildSourceFragmentMessage(subtopic, source string, limit int) string {
	var b strings.Builder

	b.WriteString("Contextual Text (primary source for your explanation):\n---\n")
	b.WriteString(planner.Truncate(source, limit))
	b.WriteString("\n---\n\n")

	b.WriteString("Task:\n")
	b.WriteString(fmt.Sprintf("Explain **%s** in a lively, analogy-driven way, drawing heavily from the Contextual Text above. ", subtopic))
	b.WriteString("Ensure your explanation aligns with the information available in the text.\n")
	b.WriteString("Insert an image descriptor **only** where a picture will materially enhance understanding ")
	b.WriteString("of a point made in the text. The image must be conceptually related to the Contextual Text.\n")
	writeDescriptorRules(&b, "A URL search string for an image that will help explain the subtopic, based on the Contextual Text.")
	b.WriteString("Skip the block as well if the Contextual Text does not provide enough information to warrant one.\n")

	b.WriteString(`
Structure (adapt as needed based on the Contextual Text):
1. Open with a hook-analogy, if the text supports one.
2. Build the core concepts step-by-step, referencing or paraphrasing the Contextual Text.
3. Explore deeper insights + common pitfalls, if the Contextual Text covers them.
`)
	b.WriteString(fmt.Sprintf("\nNow teach me about **%s** using the provided Contextual Text.\n", subtopic))

	return b.String()
}

func writeDescriptorRules(b *strings.Builder, purpose string) {
	b.WriteString("Wrap that descriptor precisely like this:\n\n")
	b.WriteString(descriptor.StartMarker + "\n")
	b.WriteString(purpose + "\n")
	b.WriteString("This description should be only 5 words or less.\n")
	b.WriteString("Make it an easy diagram to be found and not something niche or super specific.\n")
	b.WriteString(descriptor.EndMarker + "\n\n")
	b.WriteString("Do **not** supply links or any other text inside the markers.\n")
	b.WriteString("Skip the block entirely if an image would not add value.\n")
}

func fallbackFragment(subtopic string, grounded bool) string {
	if grounded {
		return fmt.Sprintf("Sorry, I encountered an error while trying to teach %s using the provided text.", subtopic)
	}
	return fmt.Sprintf("Sorry, I encountered an error while trying to teach %s.", subtopic)
}
