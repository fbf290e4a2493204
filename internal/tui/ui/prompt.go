package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Prompt is a one-line input bar for adding a flash without the compose
// form. The target scope is chosen when it is activated.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	scope    string
	onSubmit func(scope, text string)
	onCancel func()
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{InputField: input, theme: theme}
	input.SetDoneFunc(p.done)
	return p
}

func (p *Prompt) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		p.Submit()
	case tcell.KeyEscape:
		p.Cancel()
	}
}

// Submit hands the trimmed text to the submit callback and clears the
// input. Blank text cancels instead.
func (p *Prompt) Submit() {
	text := strings.TrimSpace(p.GetText())
	if text == "" {
		p.Cancel()
		return
	}
	p.SetText("")
	if p.onSubmit != nil {
		p.onSubmit(p.scope, text)
	}
}

// Cancel clears the input and calls the cancel callback.
func (p *Prompt) Cancel() {
	p.SetText("")
	if p.onCancel != nil {
		p.onCancel()
	}
}

// SetOnSubmit sets the callback invoked with the target scope and the
// trimmed, non-empty text.
func (p *Prompt) SetOnSubmit(fn func(scope, text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback for Escape or an empty submit.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate clears the prompt and targets scope.
func (p *Prompt) Activate(scope string) {
	p.scope = scope
	p.SetText("")
	p.SetLabel(scope + "> ")
	p.SetTitle(" Quick flash ")
}

// Scope returns the scope the prompt currently targets.
func (p *Prompt) Scope() string {
	return p.scope
}
