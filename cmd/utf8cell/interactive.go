package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/internal/config"
	"github.com/wippyai/utf8cell/output"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	widthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	headerBitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	payloadBitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	input    textinput.Model
	seq      []byte
	opts     []output.Option
	value    uint64
	widthIdx int
	parsed   bool
}

func newInteractiveModel(s config.Settings) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "U+1F600, 0x4E2D, 233 or a character"
	ti.Prompt = "value: "
	ti.Width = 40
	ti.Focus()

	m := &interactiveModel{input: ti, opts: writerOptions(s)}
	for i, w := range utf8cell.Widths {
		if w == s.CellWidth() {
			m.widthIdx = i
		}
	}
	return m
}

func (m *interactiveModel) width() utf8cell.Width {
	return utf8cell.Widths[m.widthIdx]
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.widthIdx = (m.widthIdx + 1) % len(utf8cell.Widths)
			m.recompute()
			return m, nil
		case "shift+tab":
			m.widthIdx = (m.widthIdx + len(utf8cell.Widths) - 1) % len(utf8cell.Widths)
			m.recompute()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.recompute()
	return m, cmd
}

// recompute re-parses the input and re-encodes it for the current width.
func (m *interactiveModel) recompute() {
	m.seq, m.err, m.parsed = nil, nil, false

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	v, err := parseValue(text)
	if err != nil {
		m.err = err
		return
	}
	m.value, m.parsed = v, true
	m.seq, m.err = encodeCell(m.width(), v, m.opts...)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UTF-8 Cells"))
	b.WriteString(" width ")
	b.WriteString(widthStyle.Render(m.width().String()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case !m.parsed:
		b.WriteString(helpStyle.Render("type a value to see its encoding"))
	default:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab/shift+tab width • esc quit"))
	return b.String()
}

func (m *interactiveModel) renderResult() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  length %s\n", label(m.value), classifyOf(m.value))
	if len(m.seq) == 0 {
		b.WriteString(resultStyle.Render("nothing written"))
		return b.String()
	}

	b.WriteString("bytes  ")
	b.WriteString(resultStyle.Render(hexBytes(m.seq)))
	b.WriteString("\nbits   ")
	for i, g := range bitLayout(m.seq, m.width()) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(headerBitStyle.Render(g.header))
		b.WriteString(payloadBitStyle.Render(g.payload))
	}
	if m.width() != utf8cell.Width8 {
		b.WriteString("\nglyph  ")
		b.WriteString(resultStyle.Render(string(m.seq)))
	}
	return b.String()
}

func runInteractive(s config.Settings) error {
	p := tea.NewProgram(newInteractiveModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
