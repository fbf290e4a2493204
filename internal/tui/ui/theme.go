package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	TableHeaderFg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	PromptBorderColor tcell.Color
	FlashDefaultColor tcell.Color
	// FlashColors maps flash categories to their text color.
	FlashColors map[string]tcell.Color
}

// DefaultTheme returns a k9s-inspired dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		BorderColor:       tcell.ColorDodgerBlue,
		TableHeaderFg:     tcell.ColorWhite,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorAqua,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorAqua,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		PromptBorderColor: tcell.ColorDodgerBlue,
		FlashDefaultColor: tcell.ColorNavajoWhite,
		FlashColors: map[string]tcell.Color{
			"info":    tcell.ColorNavajoWhite,
			"success": tcell.ColorLightGreen,
			"warn":    tcell.ColorOrange,
			"error":   tcell.ColorOrangeRed,
		},
	}
}

// FlashColor returns the color for a flash category.
func (t *Theme) FlashColor(category string) tcell.Color {
	if c, ok := t.FlashColors[category]; ok {
		return c
	}
	return t.FlashDefaultColor
}
