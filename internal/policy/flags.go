package policy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"thispc/internal/folders"
)

// ErrInvalidFlagSet means a FlagSet does not cover exactly the managed folders.
var ErrInvalidFlagSet = errors.New("invalid flag set")

// FlagSet maps a folder id to its visibility; true means shown.
type FlagSet map[string]bool

func (f FlagSet) Clone() FlagSet {
	out := make(FlagSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f FlagSet) Equal(other FlagSet) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Set records visibility for a folder given by alias or id.
func (f FlagSet) Set(key string, visible bool) error {
	it, ok := folders.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: unknown folder %q", ErrInvalidFlagSet, key)
	}
	f[it.ID] = visible
	return nil
}

// Validate checks that f has one entry per item and nothing else.
func (f FlagSet) Validate(items []folders.Item) error {
	known := make(map[string]struct{}, len(items))
	var missing []string
	for _, it := range items {
		known[it.ID] = struct{}{}
		if _, ok := f[it.ID]; !ok {
			missing = append(missing, it.Alias)
		}
	}
	var extra []string
	for id := range f {
		if _, ok := known[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	switch {
	case len(missing) > 0 && len(extra) > 0:
		return fmt.Errorf("%w: missing %s; unexpected %s", ErrInvalidFlagSet, strings.Join(missing, ", "), strings.Join(extra, ", "))
	case len(missing) > 0:
		return fmt.Errorf("%w: missing %s", ErrInvalidFlagSet, strings.Join(missing, ", "))
	case len(extra) > 0:
		return fmt.Errorf("%w: unexpected %s", ErrInvalidFlagSet, strings.Join(extra, ", "))
	}
	return nil
}

// AllShown returns a FlagSet with every managed folder visible.
func AllShown() FlagSet {
	f := FlagSet{}
	for _, it := range folders.List() {
		f[it.ID] = true
	}
	return f
}

type Change struct {
	ID   string
	From bool
	To   bool
}

// Diff lists items whose visibility differs between current and desired, in
// item order. An item missing from current counts as shown.
func Diff(items []folders.Item, current, desired FlagSet) []Change {
	var out []Change
	for _, it := range items {
		to, ok := desired[it.ID]
		if !ok {
			continue
		}
		from, ok := current[it.ID]
		if !ok {
			from = true
		}
		if from != to {
			out = append(out, Change{ID: it.ID, From: from, To: to})
		}
	}
	return out
}
