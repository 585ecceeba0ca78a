package commands

import (
	"os"

	"github.com/spf13/cobra"

	"thispc/internal/ui"
)

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the checkbox editor",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	release, err := a.lockWriter()
	if err != nil {
		return err
	}
	defer release()
	a.warnIfNotElevated()

	form := ui.NewForm(a.console(cmd.OutOrStdout()))
	sess, err := a.startSession(cmd.Context(), form)
	if err != nil {
		return err
	}
	return commitError(form.Run(cmd.Context(), sess))
}

func isInteractiveTerminal() bool {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	stdoutInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stdinInfo.Mode()&os.ModeCharDevice) != 0 && (stdoutInfo.Mode()&os.ModeCharDevice) != 0
}
