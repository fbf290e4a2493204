package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/tui/ui"
	"github.com/rivo/tview"
)

// Categories offered by the compose form.
var composeCategories = []string{"", flash.CategoryInfo, "success", flash.CategoryWarn, flash.CategoryError}

// SidebarScope is the scope rendered in the side panel.
const SidebarScope flash.Scope = "sidebar"

// Scopes offered by the compose form.
var composeScopes = []flash.Scope{flash.GlobalScope, SidebarScope}

// ComposeView is a form for adding a flash message with explicit options.
type ComposeView struct {
	*tview.Form
	theme  *ui.Theme
	onAdd  func(content string, opts flash.Options)
	onFail func(err error)
}

// NewComposeView creates the compose form.
func NewComposeView(theme *ui.Theme) *ComposeView {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetTitle(" Compose ")
	form.SetTitleColor(theme.TitleColor)

	cv := &ComposeView{Form: form, theme: theme}

	scopeNames := make([]string, len(composeScopes))
	for i, s := range composeScopes {
		scopeNames[i] = string(s)
	}
	categoryNames := make([]string, len(composeCategories))
	for i, c := range composeCategories {
		categoryNames[i] = c
		if c == "" {
			categoryNames[i] = "(default)"
		}
	}

	form.AddInputField("Message", "", 0, nil, nil).
		AddDropDown("Type", categoryNames, 0, nil).
		AddInputField("Duration", "", 10, nil, nil).
		AddInputField("Persist", "0", 4, tview.InputFieldInteger, nil).
		AddDropDown("Scope", scopeNames, 0, nil).
		AddButton("Flash", cv.submit)

	return cv
}

// SetOnAdd sets the callback that receives a submitted message.
func (cv *ComposeView) SetOnAdd(fn func(content string, opts flash.Options)) {
	cv.onAdd = fn
}

// SetOnError sets the callback for invalid input.
func (cv *ComposeView) SetOnError(fn func(err error)) {
	cv.onFail = fn
}

// Name implements ui.Component.
func (cv *ComposeView) Name() string { return "compose" }

// Start implements ui.Component.
func (cv *ComposeView) Start() {
	cv.SetFocus(0)
}

// Stop implements ui.Component.
func (cv *ComposeView) Stop() {}

// Hints implements ui.Component.
func (cv *ComposeView) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "tab", Description: "next field"}}
}

func (cv *ComposeView) submit() {
	content, opts, err := cv.values()
	if err != nil {
		if cv.onFail != nil {
			cv.onFail(err)
		}
		return
	}
	if content == "" {
		return
	}
	if cv.onAdd != nil {
		cv.onAdd(content, opts)
	}
	cv.GetFormItemByLabel("Message").(*tview.InputField).SetText("")
}

func (cv *ComposeView) values() (string, flash.Options, error) {
	var opts flash.Options

	content := strings.TrimSpace(cv.GetFormItemByLabel("Message").(*tview.InputField).GetText())

	idx, _ := cv.GetFormItemByLabel("Type").(*tview.DropDown).GetCurrentOption()
	if idx > 0 {
		opts.Type = composeCategories[idx]
	}

	if text := strings.TrimSpace(cv.GetFormItemByLabel("Duration").(*tview.InputField).GetText()); text != "" {
		d, err := time.ParseDuration(text)
		if err != nil {
			return "", opts, err
		}
		opts.Duration = d
	}

	if text := cv.GetFormItemByLabel("Persist").(*tview.InputField).GetText(); text != "" {
		n, err := strconv.Atoi(text)
		if err != nil {
			return "", opts, err
		}
		opts.Persist = n
	}

	idx, _ = cv.GetFormItemByLabel("Scope").(*tview.DropDown).GetCurrentOption()
	if idx >= 0 {
		opts.Scope = composeScopes[idx]
	}
	return content, opts, nil
}
