package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"thispc/internal/policy"
	"thispc/internal/present"
)

// ErrCancelled is returned when the user leaves the form without saving.
var ErrCancelled = errors.New("cancelled")

// Form is the interactive checkbox front end. Rows from the session feed the
// next prompt; notifications are printed through the console.
type Form struct {
	console *Console
	theme   *huh.Theme
	rows    []present.Row
}

func NewForm(console *Console) *Form {
	return &Form{console: console, theme: formTheme()}
}

func (f *Form) Render(rows []present.Row) { f.rows = rows }

func (f *Form) NotifyPermissionDenied() { f.console.NotifyPermissionDenied() }

func (f *Form) NotifyPartialFailure(failures []present.Failure) {
	f.console.NotifyPartialFailure(failures)
}

func (f *Form) NotifyFatal(err error) { f.console.NotifyFatal(err) }

// Run loops over edit and commit until the user stops. Session.OnStartup must
// have rendered into f first.
func (f *Form) Run(ctx context.Context, sess *present.Session) error {
	for {
		selected := make([]string, 0, len(f.rows))
		options := make([]huh.Option[string], 0, len(f.rows))
		for _, r := range f.rows {
			options = append(options, huh.NewOption(r.Name, r.ID))
			if r.Visible {
				selected = append(selected, r.ID)
			}
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("Folders shown in This PC").
					Description("Space toggles a folder, Enter saves.").
					Options(options...).
					Value(&selected).
					Filterable(false),
			),
		).
			WithTheme(f.theme).
			WithWidth(60).
			WithShowHelp(true)

		if err := form.Run(); err != nil {
			return formError(err)
		}

		chosen := make(map[string]bool, len(selected))
		for _, id := range selected {
			chosen[id] = true
		}
		for _, r := range f.rows {
			if err := sess.Toggle(r.ID, chosen[r.ID]); err != nil {
				return err
			}
		}

		err := sess.Commit(ctx)
		if errors.Is(err, policy.ErrPermissionDenied) {
			return err
		}
		if err == nil {
			f.console.Printf("Saved. Explorer picks the change up on its next refresh.\n")
		}

		again := false
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Edit again?").
					Value(&again).
					Affirmative("Edit").
					Negative("Quit"),
			),
		).
			WithTheme(f.theme).
			WithShowHelp(false)
		if cerr := confirm.Run(); cerr != nil {
			if errors.Is(cerr, huh.ErrUserAborted) {
				return err
			}
			return errors.Join(err, formError(cerr))
		}
		if !again {
			return err
		}
		// The commit re-rendered f.rows from the store, so the next round
		// starts from what actually landed.
	}
}

// formError maps a user abort to ErrCancelled and keeps every other failure.
func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("checkbox form: %w", err)
}

func formTheme() *huh.Theme {
	primary := lipgloss.Color("#3ccad7")
	fg := lipgloss.Color("#dddddd")
	fgMuted := lipgloss.Color("#7f7f7f")
	errorColor := lipgloss.Color("#bf5d47")
	success := lipgloss.Color("#87bf47")

	theme := huh.ThemeBase16()
	base := lipgloss.NewStyle().Foreground(fg)

	theme.Focused.Base = base.MarginLeft(1)
	theme.Focused.Title = base.Foreground(primary).Bold(true)
	theme.Focused.Description = base.Foreground(fgMuted)
	theme.Focused.ErrorIndicator = base.Foreground(errorColor)
	theme.Focused.ErrorMessage = base.Foreground(errorColor)

	theme.Focused.MultiSelectSelector = base.Foreground(primary).Bold(true).SetString("> ")
	theme.Focused.SelectedOption = base.Foreground(primary).Bold(true)
	theme.Focused.SelectedPrefix = base.Foreground(success).Bold(true).SetString("[✓] ")
	theme.Focused.UnselectedPrefix = base.Foreground(fgMuted).SetString("[ ] ")
	theme.Focused.UnselectedOption = base

	theme.Focused.FocusedButton = base.Background(primary).Foreground(lipgloss.Color("#101012")).Bold(true).Padding(0, 2)
	theme.Focused.BlurredButton = base.Foreground(fgMuted).Padding(0, 2)

	theme.Blurred.Base = base
	theme.Blurred.Title = base.Foreground(fgMuted)
	theme.Form = base.Padding(0)
	return theme
}
