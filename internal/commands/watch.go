package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"thispc/internal/policy"
	"thispc/internal/present"
	"thispc/internal/profile"
)

func (a *app) watchCommand() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <profile>",
		Short: "Apply a profile now and again whenever the file changes",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := expandPath(args[0])
			if err != nil {
				return usageError{err}
			}
			return a.runWatch(cmd, path, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before a changed profile is applied")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, path string, debounce time.Duration) error {
	ctx := cmd.Context()
	out := &heldRenderer{Console: a.console(cmd.OutOrStdout())}
	sess, err := a.startSession(ctx, out)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so the directory is watched and events
	// are filtered by name.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	out.Printf("%swatching %s\n", a.theme.Emoji("👀 "), path)
	out.Printf("press Ctrl+C to stop\n")
	if err := a.applyProfile(ctx, sess, out, path); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			a.log.Debug("profile changed", "op", event.Op.String())
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			if err := a.applyProfile(ctx, sess, out, path); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "err", err)
		}
	}
}

// applyProfile reads and applies the profile once under the writer lock. Only
// a refused write ends the watch; other failures are reported and skipped.
func (a *app) applyProfile(ctx context.Context, sess *present.Session, out *heldRenderer, path string) error {
	desired, err := profile.Read(path)
	if err != nil {
		a.log.Warn("profile not applied", "path", path, "err", err)
		out.Printf("%s %v\n", a.theme.Warn("profile not applied:"), err)
		return nil
	}
	release, err := a.lockWriter()
	if err == nil {
		err = a.commit(ctx, sess, out, desired, false)
		release()
	}
	switch {
	case errors.Is(err, policy.ErrPermissionDenied):
		return err
	case err != nil:
		if !isReported(err) {
			out.Printf("%s %v\n", a.theme.Warn("profile not applied:"), err)
		}
		a.log.Warn("profile not fully applied", "path", path, "err", err)
	default:
		a.log.Info("profile applied", "path", path)
	}
	return nil
}
