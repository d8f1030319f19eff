//go:build windows

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hong-Xiang/dynwinrt/roapi"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInputForm modelState = iota
	stateShowResult
)

var fieldLabels = []string{"class", "iid (optional)", "slot", "shape (in,..:out,..)", "args"}

type interactiveModel struct {
	err      error
	inputs   []textinput.Model
	result   string
	focusIdx int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		inputs[i] = ti
	}
	inputs[0].Placeholder = "Windows.Foundation.Uri"
	inputs[3].SetValue(":object")
	inputs[0].Focus()
	return &interactiveModel{inputs: inputs}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) invoke() tea.Msg {
	className := strings.TrimSpace(m.inputs[0].Value())
	iidText := strings.TrimSpace(m.inputs[1].Value())
	slotText := strings.TrimSpace(m.inputs[2].Value())
	shape := strings.TrimSpace(m.inputs[3].Value())
	args := strings.TrimSpace(m.inputs[4].Value())

	if className == "" {
		return callResultMsg{err: fmt.Errorf("a runtime class name is required")}
	}

	if err := roapi.Initialize(); err != nil {
		return callResultMsg{err: err}
	}
	recv, err := value.ActivationFactory(className)
	if err != nil {
		return callResultMsg{err: err}
	}
	defer recv.Close()

	if iidText != "" {
		iid, err := types.GUIDFromString(iidText)
		if err != nil {
			return callResultMsg{err: err}
		}
		cast, err := recv.Cast(iid)
		if err != nil {
			return callResultMsg{err: err}
		}
		recv.Close()
		recv = cast
	}

	if slotText == "" {
		name, err := recv.RuntimeClassName()
		if err != nil {
			return callResultMsg{err: err}
		}
		return callResultMsg{result: "runtime class: " + name}
	}

	slot, err := strconv.Atoi(slotText)
	if err != nil {
		return callResultMsg{err: fmt.Errorf("slot: %w", err)}
	}

	method, inDescs, err := buildMethod(shape, slot)
	if err != nil {
		return callResultMsg{err: err}
	}
	vals, cleanup, err := parseArgs(inDescs, args)
	if err != nil {
		return callResultMsg{err: err}
	}
	defer cleanup()

	outs, err := method.CallDynamic(&recv, vals)
	if err != nil {
		return callResultMsg{err: err}
	}

	var b strings.Builder
	for i := range outs {
		fmt.Fprintf(&b, "out[%d] = %s\n", i, formatValue(&outs[i]))
		outs[i].Close()
	}
	if b.Len() == 0 {
		b.WriteString("ok (no out-parameters)")
	}
	return callResultMsg{result: strings.TrimSuffix(b.String(), "\n")}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callResultMsg:
		m.err = msg.err
		m.result = msg.result
		m.state = stateShowResult
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.state == stateShowResult {
				m.state = stateInputForm
				return m, nil
			}
			if m.focusIdx < len(m.inputs)-1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx++
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}
			return m, m.invoke

		case "tab", "down":
			if m.state == stateInputForm {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == stateInputForm {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + len(m.inputs) - 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}
		}
	}

	if m.state == stateInputForm {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dyncall — dynamic method invoker"))
	b.WriteString("\n\n")

	switch m.state {
	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.err.Error()))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: back · esc: quit"))

	default:
		for i, in := range m.inputs {
			b.WriteString(labelStyle.Render(fieldLabels[i]))
			b.WriteString("\n")
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next field · enter on last field: invoke · esc: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel())
	_, err := p.Run()
	return err
}
