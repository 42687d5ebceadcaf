// Package trace provides a native.API that validates and records every
// call instead of talking to a GPU.
//
// Each call checks that the IDs it receives are live and of the right
// kind, copies the flattened descriptor into Go-owned records, and
// appends a Call to the log. Violations panic, matching the abort policy
// of real native implementations.
//
// The trace backend is used by tests and by cmd/wgdemo to show exactly
// which native calls a sequence of safe-layer operations produces.
package trace

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

// Call is one recorded native call.
type Call struct {
	// Op is the native entry point name, e.g. "DeviceCreateTexture".
	Op string

	// Receiver is the ID the call was made on (zero for CreateInstance).
	Receiver native.ID

	// Result is the ID the call returned, if any.
	Result native.ID

	// IDs holds additional ID arguments in argument order.
	IDs []native.ID

	// Args holds integer arguments in argument order.
	Args []uint32

	// Desc is a deep copy of the descriptor argument, if any.
	Desc any
}

// String formats the call for logs.
func (c Call) String() string {
	s := c.Op + "(" + c.Receiver.String()
	for _, id := range c.IDs {
		s += ", " + id.String()
	}
	for _, a := range c.Args {
		s += fmt.Sprintf(", %d", a)
	}
	s += ")"
	if !c.Result.IsZero() {
		s += " -> " + c.Result.String()
	}
	return s
}

type object struct {
	// openPass is the pass currently recording into a command buffer.
	openPass native.ID
	// owner is the command buffer a pass records into.
	owner native.ID
}

// API is a recording native.API. It is safe for concurrent use.
type API struct {
	mu    sync.Mutex
	calls []Call
	objs  registry.Registry[object]
}

var _ native.API = (*API)(nil)

// New creates an empty trace backend.
func New() *API {
	return &API{}
}

// Calls returns a copy of the call log.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.calls)
}

// CallsOf returns the recorded calls with the given op name.
func (a *API) CallsOf(op string) []Call {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []Call
	for _, c := range a.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Ops returns the op names of the call log in order.
func (a *API) Ops() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.calls))
	for i, c := range a.calls {
		out[i] = c.Op
	}
	return out
}

// Reset clears the call log. Live IDs are kept.
func (a *API) Reset() {
	a.mu.Lock()
	a.calls = nil
	a.mu.Unlock()
}

// Live returns the number of live IDs.
func (a *API) Live() int { return a.objs.Len() }

// LiveOf returns the number of live IDs of one kind.
func (a *API) LiveOf(kind native.Kind) int { return a.objs.LenKind(kind) }

// IsLive reports whether id is currently allocated.
func (a *API) IsLive(id native.ID) bool {
	_, ok := a.objs.KindOf(id)
	return ok
}

func (a *API) record(c Call) {
	a.mu.Lock()
	a.calls = append(a.calls, c)
	a.mu.Unlock()
}

func (a *API) check(kind native.Kind, id native.ID) object {
	return registry.Must(a.objs.Lookup(kind, id))
}

func (a *API) alloc(kind native.Kind) native.ID {
	return a.objs.Register(kind, object{})
}
