package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"thispc/internal/folders"
	"thispc/internal/policy"
	"thispc/internal/present"
)

const (
	nameWidth  = 24
	stateWidth = 9
)

// Console is the line-oriented renderer used by the scripted commands.
type Console struct {
	w      io.Writer
	theme  Theme
	header lipgloss.Style
}

func NewConsole(w io.Writer, theme Theme) *Console {
	header := lipgloss.NewStyle().Bold(true)
	if theme.NoColor {
		header = lipgloss.NewStyle()
	}
	return &Console{w: w, theme: theme, header: header}
}

func (c *Console) Render(rows []present.Row) {
	fmt.Fprintln(c.w, c.header.Render(fmt.Sprintf("%-*s %-*s %s", nameWidth, "FOLDER", stateWidth, "STATE", "ALIAS")))
	for _, r := range rows {
		fmt.Fprintf(c.w, "%-*s %s %s\n", nameWidth, r.Name, c.theme.State(r.Visible, stateWidth), c.theme.Muted(r.Alias))
	}
}

func (c *Console) NotifyPermissionDenied() {
	fmt.Fprintln(c.w, c.theme.Error("permission denied: the folder settings live under HKEY_LOCAL_MACHINE."))
	fmt.Fprintln(c.w, "Run thispc again from an elevated prompt (Run as administrator).")
}

func (c *Console) NotifyPartialFailure(failures []present.Failure) {
	fmt.Fprintln(c.w, c.theme.Warn(fmt.Sprintf("%d folder(s) were not updated:", len(failures))))
	for _, f := range failures {
		fmt.Fprintf(c.w, "  - %s (%s): %v\n", f.Name, f.Kind, f.Err)
	}
}

func (c *Console) NotifyFatal(err error) {
	fmt.Fprintf(c.w, "%s %v\n", c.theme.Error("cannot open the folder settings:"), err)
}

// Changes prints a dry-run plan.
func (c *Console) Changes(changes []policy.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(c.w, "No changes.")
		return
	}
	for _, ch := range changes {
		name := ch.ID
		if it, ok := folders.Lookup(ch.ID); ok {
			name = it.Label
		}
		fmt.Fprintf(c.w, "%-*s %s -> %s\n", nameWidth, name,
			c.theme.State(ch.From, stateWidth), c.theme.State(ch.To, stateWidth))
	}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}
