// Package present connects a front end to the synchronizer. The front end
// feeds checkbox events and a commit trigger in; the session calls back into
// a Renderer with rows and outcome notifications.
package present

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"thispc/internal/folders"
	"thispc/internal/policy"
	"thispc/internal/store"
)

type Row struct {
	ID      string
	Alias   string
	Name    string
	Visible bool
}

type Failure struct {
	ID   string
	Name string
	Kind store.Kind
	Err  error
}

type Renderer interface {
	Render(rows []Row)
	NotifyPermissionDenied()
	NotifyPartialFailure(failures []Failure)
	NotifyFatal(err error)
}

type State int

const (
	Idle State = iota
	Loaded
	Applying
	Aborted
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Applying:
		return "applying"
	case Aborted:
		return "aborted"
	default:
		return "idle"
	}
}

// Session owns the flag set for one render/commit cycle.
type Session struct {
	sync     *policy.Synchronizer
	renderer Renderer

	mu    sync.Mutex
	state State
	rows  []Row
	flags policy.FlagSet
}

func NewSession(sy *policy.Synchronizer, r Renderer) *Session {
	return &Session{sync: sy, renderer: r}
}

// OnStartup verifies the store, loads the flags and renders them. A store
// that cannot be reached is fatal for the session.
func (s *Session) OnStartup(ctx context.Context) error {
	if err := s.sync.Check(ctx); err != nil {
		s.renderer.NotifyFatal(err)
		return err
	}
	s.reload(ctx)
	return nil
}

// Toggle records one checkbox change.
func (s *Session) Toggle(key string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flags == nil {
		return fmt.Errorf("session not loaded")
	}
	return s.flags.Set(key, visible)
}

func (s *Session) Flags() policy.FlagSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.Clone()
}

func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.rows...)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Plan lists what committing desired would change, in the synchronizer's
// item order.
func (s *Session) Plan(desired policy.FlagSet) []policy.Change {
	return policy.Diff(s.sync.Items(), s.Flags(), desired)
}

// Commit applies the session's own flag set.
func (s *Session) Commit(ctx context.Context) error {
	return s.OnCommit(ctx, s.Flags())
}

// OnCommit applies flags, reports the outcome to the renderer and reloads.
// The apply error is returned unchanged.
func (s *Session) OnCommit(ctx context.Context, flags policy.FlagSet) error {
	s.setState(Applying)
	err := s.sync.Apply(ctx, flags)

	var applyErr *policy.ApplyError
	switch {
	case err == nil:
	case errors.Is(err, policy.ErrPermissionDenied):
		s.renderer.NotifyPermissionDenied()
	case errors.As(err, &applyErr):
		s.renderer.NotifyPartialFailure(s.failures(applyErr.Failures))
	}

	s.reload(ctx)
	if errors.Is(err, policy.ErrPermissionDenied) {
		s.setState(Aborted)
	}
	return err
}

func (s *Session) reload(ctx context.Context) {
	entries := s.sync.Entries(ctx)
	rows := make([]Row, 0, len(entries))
	flags := make(policy.FlagSet, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{ID: e.ID, Alias: e.Alias, Name: e.Name, Visible: e.Visible})
		flags[e.ID] = e.Visible
	}

	s.mu.Lock()
	s.rows = rows
	s.flags = flags
	s.state = Loaded
	s.mu.Unlock()

	s.renderer.Render(append([]Row(nil), rows...))
}

func (s *Session) failures(in []policy.ItemFailure) []Failure {
	names := map[string]string{}
	for _, r := range s.Rows() {
		names[r.ID] = r.Name
	}
	out := make([]Failure, 0, len(in))
	for _, f := range in {
		name := names[f.ID]
		if name == "" {
			if it, ok := folders.Lookup(f.ID); ok {
				name = it.Label
			}
		}
		out = append(out, Failure{ID: f.ID, Name: name, Kind: f.Kind, Err: f.Err})
	}
	return out
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
