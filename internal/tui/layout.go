package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

type keyHint struct {
	Key         string
	Description string
}

func renderHeader(title string, round int, width int) string {
	left := titleStyle.Render("  teachme")
	center := lipgloss.NewStyle().Foreground(colorText).Render(title)
	right := ""
	if round > 0 {
		right = lipgloss.NewStyle().Foreground(colorAccent).Render(fmt.Sprintf("round %d", round))
	}

	innerWidth := max(width-4, 0)
	leftGap := max((innerWidth-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(innerWidth-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return barStyle.Width(width).Render(content)
}

func renderFooter(hints []keyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(colorDim).Render(h.Description))
	}
	return barStyle.Width(width).Render("  " + strings.Join(parts, "   "))
}

// contentHeight is what remains for the body once header and footer are drawn.
func contentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

func renderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight(header, footer, height)).
		Render(content)
	return header + "\n" + body + "\n" + footer
}
