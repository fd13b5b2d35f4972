package menuperm

import "errors"

var (
	// ErrSaveInProgress is returned for edits or saves while a save runs.
	ErrSaveInProgress = errors.New("menuperm: save in progress")

	// ErrNoActiveRole is returned by Save when no role is being edited.
	ErrNoActiveRole = errors.New("menuperm: no active role")

	// ErrCancelled is returned by Save when the confirmation was declined.
	ErrCancelled = errors.New("menuperm: save cancelled")

	// ErrSyncFailed wraps a save where at least one call failed.
	ErrSyncFailed = errors.New("menuperm: sync failed")

	// ErrStaleLoad is returned by Load when a save started while it was
	// fetching. The fetched data is dropped; load again for a fresh view.
	ErrStaleLoad = errors.New("menuperm: load overtaken by a save")

	// ErrNotLoaded is returned when the editor has no catalog yet.
	ErrNotLoaded = errors.New("menuperm: editor not loaded")
)
