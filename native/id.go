package native

import "strconv"

// ID is an opaque identifier naming one native resource.
//
// IDs compare for identity only. The zero ID means "absent" and is never
// returned by a creation call.
type ID struct {
	token uint64
}

// NewID wraps a backend token. Only native implementations mint IDs.
func NewID(token uint64) ID { return ID{token: token} }

// Token returns the backend token wrapped by id.
func (id ID) Token() uint64 { return id.token }

// IsZero reports whether id is the absent sentinel.
func (id ID) IsZero() bool { return id.token == 0 }

// String returns a short form for logs, e.g. "#12".
func (id ID) String() string {
	if id.token == 0 {
		return "#none"
	}
	return "#" + strconv.FormatUint(id.token, 10)
}
