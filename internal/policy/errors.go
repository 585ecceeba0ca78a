package policy

import (
	"errors"
	"fmt"
	"strings"

	"thispc/internal/store"
)

var (
	// ErrPermissionDenied matches an apply pass aborted for lack of rights.
	ErrPermissionDenied = store.ErrPermissionDenied
	// ErrStoreUnavailable is the fatal startup error: the folder descriptions
	// key cannot be reached at all.
	ErrStoreUnavailable = errors.New("configuration store unavailable")
)

type Step string

const (
	StepCreate    Step = "create policy key"
	StepWrite     Step = "write policy"
	StepCompanion Step = "update namespace key"
)

type ItemFailure struct {
	ID   string
	Step Step
	Kind store.Kind
	Err  error
}

func (f ItemFailure) String() string {
	return fmt.Sprintf("%s (%s): %v", f.ID, f.Step, f.Err)
}

// ApplyError lists the folders that could not be updated during an apply
// pass that otherwise ran to the end.
type ApplyError struct {
	Failures []ItemFailure
}

func (e *ApplyError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("apply: %d folder(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

func (e *ApplyError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}

// AbortError stops an apply pass at ItemID. Folders after it were not
// touched. Prior holds failures recorded before the abort.
type AbortError struct {
	ItemID string
	Step   Step
	Err    error
	Prior  []ItemFailure
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("apply aborted at %s (%s): %v", e.ItemID, e.Step, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

func (e *AbortError) Is(target error) bool {
	return target == ErrPermissionDenied
}
