package game

import "errors"

// ErrInvariant marks programmer/invariant errors: missing players or
// enemies, commands issued outside their required state, out-of-range
// ability indexes. These indicate the orchestrator passed validation
// incorrectly and are never silently absorbed.
var ErrInvariant = errors.New("invariant violation")

// ErrGameNotFound is returned for unknown game ids.
var ErrGameNotFound = errors.New("game not found")

// ErrNotUndoable is returned when undo is requested past the most recent
// irreversible command. This is a policy breach by the caller, not a data
// problem.
var ErrNotUndoable = errors.New("command is not undoable")
