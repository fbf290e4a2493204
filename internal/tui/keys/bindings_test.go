package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEventPrefersView(t *testing.T) {
	r := NewRegistry()
	var fired string
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 's', Description: "saved", Handler: func() { fired = "global" }})
	r.AddView("compose", &Action{Key: tcell.KeyRune, Rune: 's', Description: "send", Handler: func() { fired = "view" }})

	ev := tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)

	if !r.HandleEvent("compose", ev) || fired != "view" {
		t.Errorf("compose: fired = %q, want view", fired)
	}
	if !r.HandleEvent("home", ev) || fired != "global" {
		t.Errorf("home: fired = %q, want global", fired)
	}
	if r.HandleEvent("home", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)) {
		t.Error("unbound key should not match")
	}
}

func TestSpecialKeyMatches(t *testing.T) {
	a := &Action{Key: tcell.KeyEscape}
	if !a.Matches(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should match")
	}
	if a.Matches(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone)) {
		t.Error("rune should not match escape")
	}
}

func TestHintsOrderAndVisibility(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'q', Description: "quit", Visible: true})
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'z', Description: "hidden"})
	r.AddView("home", &Action{Key: tcell.KeyRune, Rune: '2', Description: "compose", Visible: true})
	r.AddView("home", &Action{Key: tcell.KeyEscape, Label: "esc", Description: "back", Visible: true})

	hints := r.Hints("home")
	if len(hints) != 2 {
		t.Fatalf("len = %d, want 2", len(hints))
	}
	if hints[0].Key != "2" || !hints[0].Numeric {
		t.Errorf("hints[0] = %+v, want numeric 2", hints[0])
	}
	if hints[1].Key != "esc" || hints[1].Numeric {
		t.Errorf("hints[1] = %+v, want esc", hints[1])
	}

	global := r.GlobalHints()
	if len(global) != 1 || global[0].Key != "q" {
		t.Errorf("global = %+v, want only q", global)
	}
	if got := r.Hints("history"); len(got) != 0 {
		t.Errorf("history hints = %+v, want none", got)
	}
}
