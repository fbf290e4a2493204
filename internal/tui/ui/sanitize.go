package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/tview"
)

// SanitizeFlash prepares untrusted flash content for a dynamic-color tview
// primitive: problematic runes are dropped, whitespace runs collapse to one
// space, and color/region tags are escaped so content cannot restyle the bar.
func SanitizeFlash(s string) string {
	s = sanitizeForTerminal(s)
	s = strings.Join(strings.Fields(s), " ")
	return tview.Escape(s)
}

// sanitizeForTerminal removes codepoints that tcell renders with the wrong
// cell width: skin tone modifiers, zero width joiners and variation selectors.
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isProblematicRune(r) && !isControlRune(r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func isProblematicRune(r rune) bool {
	switch {
	// Skin tone modifiers.
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	// Zero Width Joiner.
	case r == 0x200D:
		return true
	// Variation Selectors.
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	// Variation Selectors Supplement.
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}

// isControlRune reports C0/C1 controls other than whitespace. ESC in
// particular would let content inject terminal escape sequences.
func isControlRune(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return r < 0x20 || (r >= 0x7F && r <= 0x9F)
}
