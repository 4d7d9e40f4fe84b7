package host

import (
	"fmt"
	"time"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// Instant snapshots time.Now() at creation. Calling it allocates a
// Duration holding the elapsed time since that snapshot.
type Instant struct {
	at time.Time
}

func (i *Instant) Get(ast.Ident, *ast.Interner) (runtime.Primitive, error) {
	return runtime.Primitive{}, fmt.Errorf("there are no fields on Instant")
}

func (i *Instant) Set(ast.Ident, runtime.Primitive, *ast.Interner) error {
	return fmt.Errorf("there are no fields on Instant")
}

func (i *Instant) Call(args []runtime.Primitive, _ *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	if len(args) != 0 {
		return runtime.CallReturn{}, fmt.Errorf("expected zero args for Instant.call")
	}
	ref := gc.Alloc(&Duration{d: time.Since(i.at)})
	return runtime.ReturnData(runtime.DataValue(ref)), nil
}

func (i *Instant) Method(ast.Ident, []runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("Instant has no methods")
}

func (i *Instant) Trace(*runtime.Gc) {}

// Duration holds an elapsed time span; calling it renders that span as
// a string.
type Duration struct {
	d time.Duration
}

func (d *Duration) Get(ast.Ident, *ast.Interner) (runtime.Primitive, error) {
	return runtime.Primitive{}, fmt.Errorf("there are no fields on Duration")
}

func (d *Duration) Set(ast.Ident, runtime.Primitive, *ast.Interner) error {
	return fmt.Errorf("there are no fields on Duration")
}

func (d *Duration) Call(args []runtime.Primitive, _ *ast.Interner, _ *runtime.Gc) (runtime.CallReturn, error) {
	if len(args) != 0 {
		return runtime.CallReturn{}, fmt.Errorf("expected zero args for Duration.call")
	}
	return runtime.ReturnData(runtime.StringValue(d.d.String())), nil
}

func (d *Duration) Method(ast.Ident, []runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("Duration has no methods")
}

func (d *Duration) Trace(*runtime.Gc) {}

// InstantNow is the `instantNow` native function: it allocates a fresh
// Instant snapshotting the current time.
func InstantNow(args []runtime.Primitive, _ *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	if len(args) != 0 {
		return runtime.CallReturn{}, fmt.Errorf("expected zero args for instantNow")
	}
	ref := gc.Alloc(&Instant{at: time.Now()})
	return runtime.ReturnData(runtime.DataValue(ref)), nil
}
