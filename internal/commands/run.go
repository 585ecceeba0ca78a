package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"thispc/internal/meta"
	"thispc/internal/policy"
	"thispc/internal/ui"
)

const (
	exitOK               = 0
	exitFailure          = 1
	exitUsage            = 2
	exitPermissionDenied = 3
	exitStoreUnavailable = 4
)

// Run executes the CLI with os.Args-style arguments and returns the process
// exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if len(args) > 0 {
		args = args[1:]
	}
	err := Execute(ctx, args, os.Stdout, os.Stderr)
	if err != nil && !isReported(err) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return exitCode(err)
}

// Execute runs one command line against the given writers.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{out: stdout, errOut: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "thispc",
		Short: "Show or hide the standard folders in Explorer's This PC view",
		Long: `thispc toggles the 3D Objects, Desktop, Documents, Downloads, Music,
Pictures and Videos entries under This PC. Without a subcommand it opens
the checkbox editor when attached to a terminal and prints the current
state otherwise.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isInteractiveTerminal() {
				return a.runInteractive(cmd)
			}
			return a.runList(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	addCommonFlags(root, &a.flags)

	root.AddCommand(
		a.listCommand(),
		a.editCommand(),
		a.setCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.watchCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  usageArgs(cobra.NoArgs),
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "thispc "+meta.Version)
			},
		},
	)
	return root
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// reportedError marks an error the renderer has already shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r) || errors.Is(err, ui.ErrCancelled)
}

func exitCode(err error) int {
	var u usageError
	switch {
	case err == nil, errors.Is(err, ui.ErrCancelled):
		return exitOK
	case errors.As(err, &u):
		return exitUsage
	case errors.Is(err, policy.ErrPermissionDenied):
		return exitPermissionDenied
	case errors.Is(err, policy.ErrStoreUnavailable):
		return exitStoreUnavailable
	}
	return exitFailure
}
