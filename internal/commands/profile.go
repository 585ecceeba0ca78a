package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"thispc/internal/profile"
)

func (a *app) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Save the current visibility as a YAML profile",
		Long:  "Writes the current visibility of every folder as a profile. Without a file the profile goes to stdout.",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &heldRenderer{Console: a.console(cmd.ErrOrStderr())}
			sess, err := a.startSession(cmd.Context(), out)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				b, err := profile.Marshal(sess.Flags())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			path, err := expandPath(args[0])
			if err != nil {
				return usageError{err}
			}
			if err := profile.Write(path, sess.Flags()); err != nil {
				return fmt.Errorf("write profile: %w", err)
			}
			a.log.Info("profile exported", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "%sSaved %s\n", a.theme.Emoji("💾 "), path)
			return nil
		},
	}
}

func (a *app) importCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Apply a YAML profile",
		Long:  "Applies a profile written by export. Folders the profile does not list are shown.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := expandPath(args[0])
			if err != nil {
				return usageError{err}
			}
			desired, err := profile.Read(path)
			if err != nil {
				return err
			}
			release, err := a.lockUnless(dryRun)
			if err != nil {
				return err
			}
			defer release()

			out := &heldRenderer{Console: a.console(cmd.OutOrStdout())}
			sess, err := a.startSession(cmd.Context(), out)
			if err != nil {
				return err
			}
			return a.commit(cmd.Context(), sess, out, desired, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the changes without writing them")
	return cmd
}
