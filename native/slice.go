package native

import "unsafe"

// Slice views a pointer+length pair as a Go slice without copying.
// A nil pointer or zero length yields nil.
func Slice[T any](p *T, n uintptr) []T {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// Ptr returns the pointer+length pair describing s.
// An empty slice yields (nil, 0).
func Ptr[T any](s []T) (*T, uintptr) {
	if len(s) == 0 {
		return nil, 0
	}
	return &s[0], uintptr(len(s))
}

// GoString copies a NUL-terminated byte string.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// CString returns a NUL-terminated copy of s. A NUL byte inside s ends
// the string early on the C side; callers reject such input first.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
