package runtime

import (
	"errors"

	"github.com/eka-lang/eka/internal/ast"
)

// Bundle is the object contract: anything a DataRef can point to. The
// reference implementation closes this over a fixed enum of object kinds
// via a macro; Go has no closed sum types, so this is instead an open
// interface any object type satisfies automatically (the trait-object
// alternative the design explicitly allows for).
type Bundle interface {
	Get(name ast.Ident, interner *ast.Interner) (Primitive, error)
	Set(name ast.Ident, data Primitive, interner *ast.Interner) error
	Call(args []Primitive, interner *ast.Interner, gc *Gc) (CallReturn, error)
	Method(name ast.Ident, args []Primitive, interner *ast.Interner, gc *Gc) (CallReturn, error)
	Trace(gc *Gc)
}

// Recyclable is implemented by a Bundle that wants to veto recycling
// (forcing immediate destruction on death instead). Absent this
// interface, an object can always be recycled.
type Recyclable interface {
	CanRecycle() bool
}

// Finalizer is implemented by a Bundle with cleanup to run exactly once,
// the moment it is determined dead — before the cell is either recycled
// or dropped.
type Finalizer interface {
	Finalize()
}

// Recycler is implemented by a Bundle that needs to customize what
// happens when its dead cell is reused for new data. Absent this
// interface, a recycled cell's contents are simply replaced outright —
// the same thing that happens whenever the new data is a different
// Bundle kind than the one being recycled, since recycling reuses an
// address, not a type.
type Recycler interface {
	RecycleInsert(next Bundle)
}

// ErrNoSuchField is returned by BaseObject.Get for an unrecognized name.
var ErrNoSuchField = errors.New("does not contain the field")

// BaseObject is the minimal record object: untyped named fields, get/set
// only, no call or method behavior. It is the object kind makeBase
// produces for script code and the one concrete Bundle this package
// ships; internal/host and internal/eval (closures) add the rest.
type BaseObject struct {
	fields map[ast.Ident]Primitive
}

// NewBaseObject creates an empty BaseObject.
func NewBaseObject() *BaseObject {
	return &BaseObject{fields: make(map[ast.Ident]Primitive)}
}

func (b *BaseObject) Get(name ast.Ident, _ *ast.Interner) (Primitive, error) {
	v, ok := b.fields[name]
	if !ok {
		return Primitive{}, ErrNoSuchField
	}
	return v, nil
}

func (b *BaseObject) Set(name ast.Ident, data Primitive, _ *ast.Interner) error {
	b.fields[name] = data
	return nil
}

func (b *BaseObject) Call(_ []Primitive, _ *ast.Interner, _ *Gc) (CallReturn, error) {
	return CallReturn{}, errors.New("cannot call a base object")
}

func (b *BaseObject) Method(_ ast.Ident, _ []Primitive, _ *ast.Interner, _ *Gc) (CallReturn, error) {
	return CallReturn{}, errors.New("base object has no methods")
}

func (b *BaseObject) Trace(gc *Gc) {
	for _, v := range b.fields {
		if v.Kind == KindData {
			gc.Trace(v.data)
		}
	}
}

