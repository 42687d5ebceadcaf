package wgsafe

import "errors"

// Misuse errors. They are raised as panics wrapping the sentinel, so
// callers that recover can test them with errors.Is.
var (
	// ErrReleased is raised when a destroyed handle is used.
	ErrReleased = errors.New("wgsafe: handle has been released")

	// ErrNilHandle is raised when a required handle is nil.
	ErrNilHandle = errors.New("wgsafe: handle is nil")

	// ErrCheckedOut is raised when a command buffer with an open pass is
	// used for anything other than the pass.
	ErrCheckedOut = errors.New("wgsafe: command buffer is checked out by an open pass")

	// ErrPassEnded is raised when an ended pass encoder is used.
	ErrPassEnded = errors.New("wgsafe: pass has already ended")

	// ErrSubmitted is raised when a submitted command buffer is used.
	ErrSubmitted = errors.New("wgsafe: command buffer has been submitted")

	// ErrDuplicateSubmit is raised when a submit names one command buffer
	// twice.
	ErrDuplicateSubmit = errors.New("wgsafe: command buffer appears twice in submit")

	// ErrInvalidEntryPoint is raised when a shader entry point contains a
	// NUL byte and cannot cross the native boundary intact.
	ErrInvalidEntryPoint = errors.New("wgsafe: entry point contains a NUL byte")
)

// ErrCapacityExceeded is returned when a descriptor has more entries than
// the fixed bound of its native record.
var ErrCapacityExceeded = errors.New("wgsafe: descriptor capacity exceeded")
