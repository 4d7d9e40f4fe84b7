package host

import (
	"fmt"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// MakeBase is the `makeBase` native function: it allocates a fresh,
// fieldless runtime.BaseObject. Scripts use it to get a plain object to
// hang arbitrary fields off of without any host-specific behavior.
func MakeBase(args []runtime.Primitive, _ *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	if len(args) != 0 {
		return runtime.CallReturn{}, fmt.Errorf("expected zero args for makeBase")
	}
	ref := gc.Alloc(runtime.NewBaseObject())
	return runtime.ReturnData(runtime.DataValue(ref)), nil
}
