package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"thispc/internal/policy"
	"thispc/internal/present"
	"thispc/internal/ui"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print whether each folder is shown in This PC",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *app) runList(cmd *cobra.Command) error {
	_, err := a.startSession(cmd.Context(), a.console(cmd.OutOrStdout()))
	return err
}

// heldRenderer keeps the last rendered rows until flush so a command that
// loads and then commits prints a single table.
type heldRenderer struct {
	*ui.Console
	rows []present.Row
}

func (h *heldRenderer) Render(rows []present.Row) { h.rows = rows }

func (h *heldRenderer) flush() { h.Console.Render(h.rows) }

// commitError marks outcomes the session has already reported.
func commitError(err error) error {
	var applyErr *policy.ApplyError
	if errors.Is(err, policy.ErrPermissionDenied) || errors.As(err, &applyErr) {
		return reported(err)
	}
	return err
}
