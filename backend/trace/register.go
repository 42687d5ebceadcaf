package trace

import (
	"github.com/gogpu/wgsafe/backend"
	"github.com/gogpu/wgsafe/native"
)

func init() {
	backend.Register(backend.BackendTrace, func() native.API { return New() })
}
