package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/deparse"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputSQL
	stateShowResult
)

type interactiveModel struct {
	err      error
	d        *deparse.Deparser
	result   string
	record   string
	input    textinput.Model
	selected int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
	record string
}

func newInteractiveModel(d *deparse.Deparser) *interactiveModel {
	return &interactiveModel{d: d, state: stateSelectOp}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputSQL {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(operations)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInput()
				m.state = stateInputSQL
				return m, textinput.Blink

			case stateInputSQL:
				return m, m.callDeparse

			case stateShowResult:
				m.state = stateInputSQL
				m.result, m.record, m.err = "", "", nil
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputSQL:
				m.state = stateSelectOp
			case stateShowResult:
				m.state = stateSelectOp
				m.result, m.record, m.err = "", "", nil
			}
			return m, nil
		}

	case callResultMsg:
		m.result = msg.result
		m.record = msg.record
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputSQL {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) prepareInput() {
	op := operations[m.selected]
	ti := textinput.New()
	ti.Placeholder = op.example
	ti.Prompt = op.name + "> "
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) callDeparse() tea.Msg {
	op := operations[m.selected]
	sql := m.input.Value()
	if strings.TrimSpace(sql) == "" {
		sql = op.example
	}

	payload, err := op.encode(sql)
	if err != nil {
		return callResultMsg{err: err}
	}

	res := op.call(m.d, payload)
	defer res.Free()
	if rec := res.Error; rec != nil {
		var b bytes.Buffer
		printRecord(&b, rec)
		return callResultMsg{record: b.String()}
	}
	return callResultMsg{result: res.Text}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SQL Deparse"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an entry point:\n\n")
		for i, op := range operations {
			line := fmt.Sprintf("%-14s %s", op.name, op.example)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + opStyle.Render(op.name) + strings.Repeat(" ", max(15-len(op.name), 1)) + exampleStyle.Render(op.example))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputSQL:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter deparse • esc back"))

	case stateShowResult:
		op := operations[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", opStyle.Render(op.name)))
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case m.record != "":
			b.WriteString(errorStyle.Render(strings.TrimRight(m.record, "\n")))
		default:
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		s := m.d.Stats()
		b.WriteString(helpStyle.Render(fmt.Sprintf("live scopes %d • owned objects %d • chunks reused %d",
			s.Arena.Live, s.Heap.Objects, s.Arena.ChunksReused)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter edit • esc entry points • q quit"))
	}

	return b.String()
}

func runInteractive(d *deparse.Deparser) error {
	p := tea.NewProgram(newInteractiveModel(d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
