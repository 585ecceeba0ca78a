package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"thispc/internal/folders"
	"thispc/internal/policy"
	"thispc/internal/present"
)

type setOptions struct {
	show     []string
	hide     []string
	allShown bool
	dryRun   bool
}

func (a *app) setCommand() *cobra.Command {
	var o setOptions
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Show or hide folders by alias",
		Example: `  thispc set --hide 3d-objects,music
  thispc set --show music --dry-run
  thispc set --all-shown`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSet(cmd, o)
		},
	}
	cmd.Flags().StringSliceVar(&o.show, "show", nil, "folders to show (alias or id, comma separated)")
	cmd.Flags().StringSliceVar(&o.hide, "hide", nil, "folders to hide (alias or id, comma separated)")
	cmd.Flags().BoolVar(&o.allShown, "all-shown", false, "show every folder")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "print the changes without writing them")
	return cmd
}

func (a *app) runSet(cmd *cobra.Command, o setOptions) error {
	if !o.allShown && len(o.show) == 0 && len(o.hide) == 0 {
		return usageError{fmt.Errorf("nothing to change: use --show, --hide or --all-shown")}
	}
	hidden := map[string]bool{}
	for _, key := range o.hide {
		it, ok := folders.Lookup(key)
		if !ok {
			return usageError{fmt.Errorf("unknown folder %q", key)}
		}
		hidden[it.ID] = true
	}
	for _, key := range o.show {
		it, ok := folders.Lookup(key)
		if !ok {
			return usageError{fmt.Errorf("unknown folder %q", key)}
		}
		if hidden[it.ID] {
			return usageError{fmt.Errorf("%s is both shown and hidden", it.Alias)}
		}
	}

	release, err := a.lockUnless(o.dryRun)
	if err != nil {
		return err
	}
	defer release()

	out := &heldRenderer{Console: a.console(cmd.OutOrStdout())}
	sess, err := a.startSession(cmd.Context(), out)
	if err != nil {
		return err
	}

	desired := sess.Flags()
	if o.allShown {
		desired = policy.AllShown()
	}
	for _, key := range o.show {
		if err := desired.Set(key, true); err != nil {
			return usageError{err}
		}
	}
	for _, key := range o.hide {
		if err := desired.Set(key, false); err != nil {
			return usageError{err}
		}
	}
	return a.commit(cmd.Context(), sess, out, desired, o.dryRun)
}

// commit applies desired through sess and prints the resulting table, or
// only the plan when dryRun is set. Callers that write hold the writer lock.
func (a *app) commit(ctx context.Context, sess *present.Session, out *heldRenderer, desired policy.FlagSet, dryRun bool) error {
	if dryRun {
		out.Changes(sess.Plan(desired))
		return nil
	}
	a.warnIfNotElevated()

	err := sess.OnCommit(ctx, desired)
	out.flush()
	return commitError(err)
}
