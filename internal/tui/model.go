// Package tui is the interactive study screen: read a generated lesson,
// summarize it, and revise until the summary covers every point.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/teachme/internal/assessment"
	"github.com/abhisek/teachme/internal/descriptor"
	"github.com/abhisek/teachme/internal/lesson"
)

// LessonGenerator builds the lesson to study.
type LessonGenerator interface {
	Generate(ctx context.Context, req lesson.Request) (*lesson.Lesson, error)
}

// SummaryAssessor grades a summary.
type SummaryAssessor interface {
	Assess(ctx context.Context, original, summary string, state assessment.State) assessment.Feedback
}

type phase int

const (
	phaseLoading phase = iota
	phaseReading
	phaseWriting
	phaseAssessing
	phaseFeedback
	phaseDone
	phaseFailed
)

type lessonReadyMsg struct {
	lesson *lesson.Lesson
	err    error
}

type feedbackMsg struct {
	feedback assessment.Feedback
}

// Model is the root Bubble Tea model for a study session.
type Model struct {
	ctx      context.Context
	req      lesson.Request
	lessons  LessonGenerator
	assessor SummaryAssessor

	phase    phase
	lesson   *lesson.Lesson
	err      error
	state    assessment.State
	feedback assessment.Feedback
	round    int

	spinner  spinner.Model
	viewport viewport.Model
	input    textarea.Model

	width  int
	height int
}

// New creates a study model for req.
func New(ctx context.Context, req lesson.Request, lessons LessonGenerator, assessor SummaryAssessor) Model {
	input := textarea.New()
	input.Placeholder = "Summarize the lesson in your own words..."
	input.ShowLineNumbers = false

	return Model{
		ctx:      ctx,
		req:      req,
		lessons:  lessons,
		assessor: assessor,
		phase:    phaseLoading,
		state:    assessment.Initial(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(),
		input:    input,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generate())
}

func (m Model) generate() tea.Cmd {
	ctx, req, lessons := m.ctx, m.req, m.lessons
	return func() tea.Msg {
		l, err := lessons.Generate(ctx, req)
		return lessonReadyMsg{lesson: l, err: err}
	}
}

func (m Model) assess(summary string) tea.Cmd {
	ctx, assessor, state := m.ctx, m.assessor, m.state
	original := m.lesson.Content
	return func() tea.Msg {
		return feedbackMsg{feedback: assessor.Assess(ctx, original, summary, state)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case lessonReadyMsg:
		if msg.err != nil {
			m.phase, m.err = phaseFailed, msg.err
			return m, nil
		}
		m.lesson = msg.lesson
		m.viewport.SetContent(lessonText(msg.lesson))
		m.phase = phaseReading
		return m, nil

	case feedbackMsg:
		m.feedback = msg.feedback
		m.round++
		if !assessment.IsDegraded(msg.feedback) {
			m.state = assessment.StateFor(&msg.feedback)
		}
		if assessment.Converged(msg.feedback) {
			m.phase = phaseDone
		} else {
			m.phase = phaseFeedback
		}
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading && m.phase != phaseAssessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseReading:
		switch key {
		case "q":
			return m, tea.Quit
		case "tab", "s":
			m.phase = phaseWriting
			return m, m.input.Focus()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case phaseWriting:
		switch key {
		case "esc":
			m.input.Blur()
			m.phase = phaseReading
			return m, nil
		case "ctrl+s":
			summary := strings.TrimSpace(m.input.Value())
			if summary == "" {
				return m, nil
			}
			m.input.Blur()
			m.phase = phaseAssessing
			return m, tea.Batch(m.spinner.Tick, m.assess(summary))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseFeedback:
		switch key {
		case "enter", "r":
			m.phase = phaseWriting
			return m, m.input.Focus()
		case "l":
			m.phase = phaseReading
			return m, nil
		case "q":
			return m, tea.Quit
		}

	case phaseDone, phaseFailed:
		if key == "q" || key == "enter" || key == "esc" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) resize() {
	header := renderHeader("", 0, m.width)
	footer := renderFooter(nil, m.width)
	h := contentHeight(header, footer, m.height)
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(h)
	m.input.SetWidth(max(m.width-4, 10))
	m.input.SetHeight(max(h-2, 3))
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	title := m.req.Topic
	if m.lesson != nil {
		title = m.lesson.Topic
	}
	header := renderHeader(title, m.round, m.width)
	footer := renderFooter(m.hints(), m.width)

	v.SetContent(renderFrame(header, m.body(), footer, m.width, m.height))
	return v
}

func (m Model) body() string {
	switch m.phase {
	case phaseLoading:
		return fmt.Sprintf("\n  %s Preparing your lesson...", m.spinner.View())
	case phaseReading:
		return m.viewport.View()
	case phaseWriting:
		return "\n" + m.input.View()
	case phaseAssessing:
		return fmt.Sprintf("\n  %s Reading your summary...", m.spinner.View())
	case phaseFeedback, phaseDone:
		return feedbackText(m.feedback)
	case phaseFailed:
		return "\n  " + errorStyle.Render("Could not build a lesson: "+m.err.Error())
	}
	return ""
}

func (m Model) hints() []keyHint {
	switch m.phase {
	case phaseReading:
		return []keyHint{{"↑↓", "Scroll"}, {"Tab", "Summarize"}, {"q", "Quit"}}
	case phaseWriting:
		return []keyHint{{"Ctrl+S", "Submit"}, {"Esc", "Back to lesson"}}
	case phaseFeedback:
		return []keyHint{{"Enter", "Revise summary"}, {"l", "Re-read lesson"}, {"q", "Quit"}}
	case phaseDone, phaseFailed:
		return []keyHint{{"Enter", "Exit"}}
	}
	return []keyHint{{"Ctrl+C", "Quit"}}
}

// lessonText prepares lesson content for the terminal: image URLs are
// dimmed and any leftover descriptor blocks are dropped.
func lessonText(l *lesson.Lesson) string {
	images := make(map[string]bool, len(l.Images))
	for _, u := range l.Images {
		images[u] = true
	}

	var b strings.Builder
	for _, line := range strings.Split(descriptor.Strip(l.Content), "\n") {
		if images[strings.TrimSpace(line)] {
			b.WriteString(imageStyle.Render("[image] "+strings.TrimSpace(line)) + "\n")
			continue
		}
		b.WriteString(line + "\n")
	}
	if len(l.Videos) > 0 {
		b.WriteString("\n" + titleStyle.Render("Related videos") + "\n")
		for _, v := range l.Videos {
			b.WriteString(fmt.Sprintf("  • %s  %s\n", v.Title, hintStyle.Render(v.URL)))
		}
	}
	return b.String()
}

func feedbackText(f assessment.Feedback) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range f.CorrectPoints {
		b.WriteString(correctStyle.Render("  ✓ "+p) + "\n")
	}
	if len(f.MissingPoints) > 0 {
		b.WriteString("\n" + titleStyle.Render("  Still missing") + "\n")
		for _, p := range f.MissingPoints {
			b.WriteString(missingStyle.Render("  • "+p) + "\n")
		}
	}
	return b.String()
}

// Run starts the study session.
func Run(ctx context.Context, req lesson.Request, lessons LessonGenerator, assessor SummaryAssessor) error {
	p := tea.NewProgram(New(ctx, req, lessons, assessor), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
