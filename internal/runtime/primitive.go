// Package runtime holds the value representation, object contract, and
// garbage collector that the evaluator is built on. These three are kept
// in one package deliberately: Primitive embeds a DataRef, DataRef is
// produced and traced by Gc, Gc traces anything satisfying Bundle, and
// Bundle methods both receive and return Primitive. Splitting them across
// packages forces an import cycle; bundling mutually-dependent clusters
// like this into one package rather than splitting along type
// boundaries is a common pattern for interpreter cores.
package runtime

import "github.com/eka-lang/eka/internal/ast"

// Kind discriminates the variant held by a Primitive.
type Kind byte

const (
	KindNone Kind = iota
	KindData
	KindString
	KindNumber
	KindFloat
	KindChar
	KindBool
	KindKeyword
	KindNativeFn
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindData:
		return "data"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindKeyword:
		return "keyword"
	case KindNativeFn:
		return "native-fn"
	case KindFn:
		return "fn"
	default:
		return "unknown"
	}
}

// NativeFn is a host-provided function reachable from script code: the
// evaluator's `+`, `-`, `*`, `/`, and `format` builtins, plus anything
// internal/host registers.
type NativeFn func(args []Primitive, interner *ast.Interner, gc *Gc) (CallReturn, error)

// Primitive is a value the evaluator can hold in a variable, pass as an
// argument, or return. It is a flat tagged struct rather than an
// interface so that copying one (the common case — arguments, return
// values, field reads) never allocates; only the KindData variant holds
// anything indirect, and DataRef itself is a small fixed-size handle.
type Primitive struct {
	Kind Kind

	data   DataRef
	str    string
	num    int64
	flt    float64
	ch     rune
	bl     bool
	kw     ast.Ident
	native NativeFn
	fn     ast.FnId
}

// None is the unit value primitive.
var None = Primitive{Kind: KindNone}

// DataValue wraps a heap handle.
func DataValue(d DataRef) Primitive { return Primitive{Kind: KindData, data: d} }

// StringValue wraps a string.
func StringValue(s string) Primitive { return Primitive{Kind: KindString, str: s} }

// NumberValue wraps a 64-bit integer.
func NumberValue(n int64) Primitive { return Primitive{Kind: KindNumber, num: n} }

// FloatValue wraps a 64-bit float.
func FloatValue(f float64) Primitive { return Primitive{Kind: KindFloat, flt: f} }

// CharValue wraps a single character.
func CharValue(c rune) Primitive { return Primitive{Kind: KindChar, ch: c} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Primitive { return Primitive{Kind: KindBool, bl: b} }

// KeywordValue wraps an interned keyword name.
func KeywordValue(id ast.Ident) Primitive { return Primitive{Kind: KindKeyword, kw: id} }

// NativeFnValue wraps a host function pointer.
func NativeFnValue(f NativeFn) Primitive { return Primitive{Kind: KindNativeFn, native: f} }

// FnValue wraps a reference to a statically-defined script function.
func FnValue(id ast.FnId) Primitive { return Primitive{Kind: KindFn, fn: id} }

// Data returns the held DataRef. Panics if Kind != KindData — callers are
// expected to have already checked Kind, exactly as a Rust match on the
// Primitive enum would require matching the right variant first.
func (p Primitive) Data() DataRef {
	p.mustBe(KindData)
	return p.data
}

// Str returns the held string.
func (p Primitive) Str() string {
	p.mustBe(KindString)
	return p.str
}

// Number returns the held integer.
func (p Primitive) Number() int64 {
	p.mustBe(KindNumber)
	return p.num
}

// Float returns the held float.
func (p Primitive) Float() float64 {
	p.mustBe(KindFloat)
	return p.flt
}

// Char returns the held character.
func (p Primitive) Char() rune {
	p.mustBe(KindChar)
	return p.ch
}

// Bool returns the held boolean.
func (p Primitive) Bool() bool {
	p.mustBe(KindBool)
	return p.bl
}

// Keyword returns the held keyword's interned Ident.
func (p Primitive) Keyword() ast.Ident {
	p.mustBe(KindKeyword)
	return p.kw
}

// Native returns the held host function.
func (p Primitive) Native() NativeFn {
	p.mustBe(KindNativeFn)
	return p.native
}

// Fn returns the held function id.
func (p Primitive) Fn() ast.FnId {
	p.mustBe(KindFn)
	return p.fn
}

func (p Primitive) mustBe(k Kind) {
	if p.Kind != k {
		panic("runtime: Primitive is a " + p.Kind.String() + ", not a " + k.String())
	}
}

// CallReturnKind discriminates CallReturn's two shapes.
type CallReturnKind byte

const (
	// CallReturnData carries a plain value back to the caller.
	CallReturnData CallReturnKind = iota
	// CallReturnCallFn asks the evaluator to invoke a statically-defined
	// function with the given arguments instead — used by objects whose
	// "call" is really a dispatch to script-defined behavior.
	CallReturnCallFn
)

// CallReturn is what Bundle.Call and Bundle.Method produce.
type CallReturn struct {
	Kind CallReturnKind
	Fn   ast.FnId
	Args []Primitive
	Data Primitive
}

// ReturnData builds a CallReturn carrying a plain value.
func ReturnData(v Primitive) CallReturn {
	return CallReturn{Kind: CallReturnData, Data: v}
}

// ReturnCallFn builds a CallReturn asking for fn to be invoked with args.
func ReturnCallFn(fn ast.FnId, args []Primitive) CallReturn {
	return CallReturn{Kind: CallReturnCallFn, Fn: fn, Args: args}
}
