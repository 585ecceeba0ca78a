package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"thispc/internal/config"
	"thispc/internal/ctxlog"
	"thispc/internal/policy"
	"thispc/internal/present"
	"thispc/internal/singleinstance"
	"thispc/internal/store"
	"thispc/internal/ui"
)

const writerLock = "thispc-writer"

var errWriterBusy = errors.New("another thispc instance is changing folder settings")

type commonFlags struct {
	configPath string
	store      string
	storeFile  string
	logLevel   string
	noColor    bool
	noEmoji    bool
}

func addCommonFlags(cmd *cobra.Command, c *commonFlags) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&c.configPath, "config", "", "config file (default: user config dir, or $THISPC_CONFIG)")
	fs.StringVar(&c.store, "store", "", "settings backend: registry or file")
	fs.StringVar(&c.storeFile, "store-file", "", "YAML snapshot used by the file backend (created on the first change)")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&c.noColor, "no-color", false, "disable ANSI colors")
	fs.BoolVar(&c.noEmoji, "no-emoji", false, "disable symbols in output")
}

type app struct {
	flags    commonFlags
	settings config.Settings
	theme    ui.Theme
	log      *slog.Logger
	out      io.Writer
	errOut   io.Writer
}

// setup merges the config file with the flags that were set explicitly and
// puts the logger on the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(a.flags.configPath)
	if err != nil {
		return usageError{err}
	}
	pf := cmd.Flags()
	if pf.Changed("store") {
		s.Store = a.flags.store
	}
	if pf.Changed("store-file") {
		path, err := expandPath(a.flags.storeFile)
		if err != nil {
			return usageError{fmt.Errorf("store-file: %w", err)}
		}
		s.StoreFile = path
	}
	if pf.Changed("log-level") {
		s.LogLevel = a.flags.logLevel
	}
	if pf.Changed("no-color") {
		s.NoColor = a.flags.noColor
	}
	if pf.Changed("no-emoji") {
		s.NoEmoji = a.flags.noEmoji
	}
	if err := s.Validate(); err != nil {
		return usageError{err}
	}
	if s.NoColor {
		color.NoColor = true
	}

	a.settings = s
	a.theme = ui.Theme{NoColor: s.NoColor, NoEmoji: s.NoEmoji}
	a.log = ctxlog.New(a.errOut, s.LogLevel).With("store", s.Store)
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), a.log))
	return nil
}

func (a *app) openStore() (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch a.settings.Store {
	case config.StoreRegistry:
		st, err = store.NewRegistry()
	default:
		a.log.Debug("using file store", "path", a.settings.StoreFile)
		st, err = store.NewFile(a.settings.StoreFile, policy.SeedTree())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", policy.ErrStoreUnavailable, err)
	}
	return st, nil
}

// startSession opens the store and loads the current flags into a session
// rendering through r. Failures have already been shown by r.
func (a *app) startSession(ctx context.Context, r present.Renderer) (*present.Session, error) {
	st, err := a.openStore()
	if err != nil {
		r.NotifyFatal(err)
		return nil, reported(err)
	}
	sess := present.NewSession(policy.New(st), r)
	if err := sess.OnStartup(ctx); err != nil {
		return nil, reported(err)
	}
	return sess, nil
}

func (a *app) console(w io.Writer) *ui.Console {
	return ui.NewConsole(w, a.theme)
}

// lockWriter holds the cross-process writer lock until the returned func is
// called. Writers take it before loading so the flags they build on cannot go
// stale. THISPC_ALLOW_MULTI=1 disables the guard.
func (a *app) lockWriter() (func(), error) {
	if os.Getenv("THISPC_ALLOW_MULTI") == "1" {
		return func() {}, nil
	}
	ok, err := singleinstance.Acquire(writerLock)
	if err != nil {
		return nil, fmt.Errorf("instance guard failed: %w", err)
	}
	if !ok {
		return nil, errWriterBusy
	}
	return func() { singleinstance.Release(writerLock) }, nil
}

// lockUnless is lockWriter for commands that only write when dryRun is unset.
func (a *app) lockUnless(dryRun bool) (func(), error) {
	if dryRun {
		return func() {}, nil
	}
	return a.lockWriter()
}

func (a *app) warnIfNotElevated() {
	if a.settings.Store == config.StoreRegistry && !store.IsElevated() {
		a.log.Warn("process is not elevated; HKEY_LOCAL_MACHINE writes will likely be refused")
	}
}
