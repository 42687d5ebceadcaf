package bindgen

import (
	"go/types"
	"strings"
	"unicode"
)

// snake converts a Go identifier to lower snake case, keeping acronyms
// together: "BindGroupLayoutsLength" becomes "bind_group_layouts_length"
// and "NativeID" becomes "native_id".
func snake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// basicC maps Go basic kinds to C types from <stdint.h> and <stdbool.h>.
var basicC = map[types.BasicKind]string{
	types.Bool:    "bool",
	types.Int8:    "int8_t",
	types.Int16:   "int16_t",
	types.Int32:   "int32_t",
	types.Int64:   "int64_t",
	types.Int:     "intptr_t",
	types.Uint8:   "uint8_t",
	types.Uint16:  "uint16_t",
	types.Uint32:  "uint32_t",
	types.Uint64:  "uint64_t",
	types.Uint:    "uintptr_t",
	types.Uintptr: "uintptr_t",
	types.Float32: "float",
	types.Float64: "double",
}
