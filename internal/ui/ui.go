package ui

import (
	"fmt"

	"github.com/fatih/color"
)

type Theme struct {
	NoColor bool
	NoEmoji bool
}

func (t Theme) Emoji(s string) string {
	if t.NoEmoji {
		return ""
	}
	return s
}

// State renders a visibility flag padded to width before coloring, so
// columns stay aligned with ANSI codes in the output.
func (t Theme) State(visible bool, width int) string {
	word, sym, c := "hidden", "✗ ", color.New(color.FgRed, color.Bold)
	if visible {
		word, sym, c = "shown", "✓ ", color.New(color.FgGreen, color.Bold)
	}
	if t.NoEmoji {
		sym = ""
	}
	s := fmt.Sprintf("%-*s", width, sym+word)
	if t.NoColor {
		return s
	}
	return c.Sprint(s)
}

func (t Theme) Warn(s string) string {
	if t.NoColor {
		return s
	}
	return color.New(color.FgYellow, color.Bold).Sprint(s)
}

func (t Theme) Error(s string) string {
	if t.NoColor {
		return s
	}
	return color.New(color.FgRed, color.Bold).Sprint(s)
}

func (t Theme) Muted(s string) string {
	if t.NoColor {
		return s
	}
	return color.New(color.Faint).Sprint(s)
}
