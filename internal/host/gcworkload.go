package host

import (
	"fmt"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// GcWorkloadBridge exposes a Gc's tuning knobs (traces, markDead,
// gcWhenNoDead) as script-visible fields. Unlike the reference object
// this is grounded on, a successful Set returns nil instead of falling
// through to an error after the field write has already taken effect.
type GcWorkloadBridge struct {
	gc *runtime.Gc

	markDeadIdent     ast.Ident
	tracesIdent       ast.Ident
	gcWhenNoDeadIdent ast.Ident
}

// NewGcWorkloadBridge wraps gc, interning its three field names.
func NewGcWorkloadBridge(gc *runtime.Gc, interner *ast.Interner) *GcWorkloadBridge {
	return &GcWorkloadBridge{
		gc:                gc,
		markDeadIdent:     interner.Intern("markDead"),
		tracesIdent:       interner.Intern("traces"),
		gcWhenNoDeadIdent: interner.Intern("gcWhenNoDead"),
	}
}

func (b *GcWorkloadBridge) Get(name ast.Ident, _ *ast.Interner) (runtime.Primitive, error) {
	switch name {
	case b.markDeadIdent:
		return runtime.NumberValue(int64(b.gc.Workload.MarkDead)), nil
	case b.tracesIdent:
		return runtime.NumberValue(int64(b.gc.Workload.Traces)), nil
	case b.gcWhenNoDeadIdent:
		return runtime.BoolValue(b.gc.Workload.GcWhenNoDead), nil
	default:
		return runtime.Primitive{}, fmt.Errorf("no field with the given name on GcWorkload")
	}
}

func (b *GcWorkloadBridge) Set(name ast.Ident, data runtime.Primitive, _ *ast.Interner) error {
	switch name {
	case b.markDeadIdent:
		if data.Kind != runtime.KindNumber {
			return fmt.Errorf("GcWorkload.markDead is a Number")
		}
		b.gc.Workload.MarkDead = int(data.Number())
		return nil
	case b.tracesIdent:
		if data.Kind != runtime.KindNumber {
			return fmt.Errorf("GcWorkload.traces is a Number")
		}
		b.gc.Workload.Traces = int(data.Number())
		return nil
	case b.gcWhenNoDeadIdent:
		if data.Kind != runtime.KindBool {
			return fmt.Errorf("GcWorkload.gcWhenNoDead is a Bool")
		}
		b.gc.Workload.GcWhenNoDead = data.Bool()
		return nil
	default:
		return fmt.Errorf("no field with the given name on GcWorkload")
	}
}

func (b *GcWorkloadBridge) Call([]runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("cannot call GcWorkload")
}

func (b *GcWorkloadBridge) Method(ast.Ident, []runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("GcWorkload has no methods")
}

func (b *GcWorkloadBridge) Trace(*runtime.Gc) {}
