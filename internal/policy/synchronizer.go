// Package policy keeps the "This PC" visibility flags and the configuration
// store in sync.
//
// Load never fails: a folder is hidden only when its ThisPCPolicy value is
// exactly "Hide", and every other outcome, read errors included, leaves it
// shown. Apply writes the whole set back in registry order. A permission
// error while writing a folder's policy aborts the pass; any other failure is
// recorded for that folder and the pass moves on. There is no rollback.
//
// The 3D Objects folder also needs its namespace key under MyComputer: the
// key exists exactly when the folder is shown.
package policy

import (
	"context"
	"fmt"
	"sync"

	"thispc/internal/ctxlog"
	"thispc/internal/folders"
	"thispc/internal/store"
)

type Entry struct {
	ID      string
	Alias   string
	Name    string
	Visible bool
}

type Option func(*Synchronizer)

// WithItems replaces the managed folder list.
func WithItems(items []folders.Item) Option {
	return func(s *Synchronizer) {
		s.items = append([]folders.Item(nil), items...)
	}
}

// Synchronizer serializes every call, so one load or apply is in flight at
// a time.
type Synchronizer struct {
	mu    sync.Mutex
	store store.Store
	items []folders.Item
}

func New(s store.Store, opts ...Option) *Synchronizer {
	sy := &Synchronizer{store: s, items: folders.List()}
	for _, opt := range opts {
		opt(sy)
	}
	return sy
}

func (s *Synchronizer) Items() []folders.Item {
	return append([]folders.Item(nil), s.items...)
}

// Check verifies that the folder descriptions key is reachable.
func (s *Synchronizer) Check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.HasPath(folders.BasePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, folders.BasePath, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s does not exist", ErrStoreUnavailable, folders.BasePath)
	}
	ctxlog.FromContext(ctx).Debug("configuration store reachable", "path", folders.BasePath)
	return nil
}

func (s *Synchronizer) Load(ctx context.Context) FlagSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Synchronizer) load(ctx context.Context) FlagSet {
	log := ctxlog.FromContext(ctx)
	flags := make(FlagSet, len(s.items))
	for _, it := range s.items {
		v, err := s.store.Read(it.PolicyPath(), folders.PolicyValue)
		if err != nil {
			if store.KindOf(err) != store.KindNotFound {
				log.Debug("policy unreadable, treating folder as shown", "folder", it.Alias, "err", err)
			}
			flags[it.ID] = true
			continue
		}
		flags[it.ID] = v != folders.Hide
	}
	return flags
}

// Entries loads the flags and resolves each folder's display name.
func (s *Synchronizer) Entries(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags := s.load(ctx)
	out := make([]Entry, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, Entry{
			ID:      it.ID,
			Alias:   it.Alias,
			Name:    s.displayName(it),
			Visible: flags[it.ID],
		})
	}
	return out
}

func (s *Synchronizer) displayName(it folders.Item) string {
	name, err := s.store.Read(it.NamePath(), folders.NameValue)
	if err != nil || name == "" {
		return it.Label
	}
	return name
}

// Apply persists flags. It returns nil when every folder was written,
// *ApplyError when some folders failed, and *AbortError (matching
// ErrPermissionDenied) when a policy write was refused. flags is not modified.
func (s *Synchronizer) Apply(ctx context.Context, flags FlagSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := flags.Validate(s.items); err != nil {
		return err
	}

	log := ctxlog.FromContext(ctx)
	var failures []ItemFailure
	for _, it := range s.items {
		visible := flags[it.ID]
		if step, err := s.writePolicy(it, visible); err != nil {
			kind := store.KindOf(err)
			if kind == store.KindPermissionDenied {
				log.Warn("apply aborted", "folder", it.Alias, "step", step, "err", err)
				return &AbortError{ItemID: it.ID, Step: step, Err: err, Prior: failures}
			}
			log.Warn("folder not updated", "folder", it.Alias, "step", step, "err", err)
			failures = append(failures, ItemFailure{ID: it.ID, Step: step, Kind: kind, Err: err})
			continue
		}
		log.Debug("policy written", "folder", it.Alias, "visible", visible)

		if !it.IsCompanion() {
			continue
		}
		if err := s.syncCompanion(visible); err != nil {
			log.Warn("namespace key not updated", "folder", it.Alias, "visible", visible, "err", err)
			failures = append(failures, ItemFailure{ID: it.ID, Step: StepCompanion, Kind: store.KindOf(err), Err: err})
		}
	}
	if len(failures) > 0 {
		return &ApplyError{Failures: failures}
	}
	return nil
}

func (s *Synchronizer) writePolicy(it folders.Item, visible bool) (Step, error) {
	path := it.PolicyPath()
	if err := s.store.CreatePath(path); err != nil {
		return StepCreate, err
	}
	value := folders.Show
	if !visible {
		value = folders.Hide
	}
	if err := s.store.Write(path, folders.PolicyValue, value); err != nil {
		return StepWrite, err
	}
	return "", nil
}

func (s *Synchronizer) syncCompanion(visible bool) error {
	if visible {
		return s.store.CreatePath(folders.CompanionPath)
	}
	return s.store.DeletePath(folders.CompanionPath)
}
