package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressKey(t *testing.T, m confirmModel, r rune) confirmModel {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	if cmd == nil {
		t.Fatalf("a keystroke must quit the prompt")
	}
	model, ok := updated.(confirmModel)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return model
}

func TestConfirmAcceptsYes(t *testing.T) {
	for _, r := range []rune{'y', 'Y'} {
		m := pressKey(t, newConfirmModel("Publish?"), r)
		if !m.accepted {
			t.Fatalf("key %q should accept", r)
		}
	}
}

func TestConfirmDeclinesEverythingElse(t *testing.T) {
	for _, r := range []rune{'n', 'N', 'x', ' '} {
		m := pressKey(t, newConfirmModel("Publish?"), r)
		if m.accepted {
			t.Fatalf("key %q should decline", r)
		}
	}
}

func TestConfirmEscDeclines(t *testing.T) {
	updated, cmd := newConfirmModel("Publish?").Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc must quit the prompt")
	}
	if updated.(confirmModel).accepted {
		t.Fatalf("esc should decline")
	}
}

func TestConfirmViewShowsPrompt(t *testing.T) {
	m := newConfirmModel("Upload 2 artifacts?")
	if !strings.Contains(m.View(), "Upload 2 artifacts?") {
		t.Fatalf("view missing prompt: %q", m.View())
	}
	answered := pressKey(t, m, 'n')
	if answered.View() != "" {
		t.Fatalf("answered prompt should clear its view")
	}
}

func TestStaticConfirmer(t *testing.T) {
	yes := &StaticConfirmer{Answer: true}
	ok, err := yes.Confirm("ignored")
	if err != nil || !ok {
		t.Fatalf("static yes = %v %v", ok, err)
	}
	no := &StaticConfirmer{}
	ok, err = no.Confirm("ignored")
	if err != nil || ok {
		t.Fatalf("static no = %v %v", ok, err)
	}
}
