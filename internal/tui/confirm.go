package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmKeyMap declares the keys the prompt reacts to. Only an explicit yes
// accepts; every other keystroke declines, matching the original operator
// contract where anything but "y" cancels the upload.
type confirmKeyMap struct {
	Yes  key.Binding
	Quit key.Binding
}

func defaultConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "no")),
	}
}

type confirmModel struct {
	prompt   string
	keys     confirmKeyMap
	accepted bool
	answered bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt, keys: defaultConfirmKeyMap()}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.accepted = true
	case key.Matches(keyMsg, m.keys.Quit):
		m.accepted = false
	default:
		// A single keystroke answers the prompt either way.
		m.accepted = false
	}
	m.answered = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return fmt.Sprintf("%s %s ", m.prompt, Hint("[y/N]"))
}

// TerminalConfirmer asks the operator through an inline bubbletea prompt that
// reads a single keystroke.
type TerminalConfirmer struct {
	// Options are forwarded to tea.NewProgram (tests inject input/output).
	Options []tea.ProgramOption
}

// Confirm implements the step confirmation contract.
func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	program := tea.NewProgram(newConfirmModel(prompt), c.Options...)
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("tui: confirm prompt: %w", err)
	}
	model, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("tui: unexpected confirm model %T", final)
	}
	return model.accepted, nil
}

// StaticConfirmer answers without prompting. It backs the --yes flag and the
// step tests.
type StaticConfirmer struct {
	Answer bool
}

// Confirm returns the preset answer.
func (c *StaticConfirmer) Confirm(string) (bool, error) {
	return c.Answer, nil
}
