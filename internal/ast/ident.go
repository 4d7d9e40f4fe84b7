// Package ast defines the expression graph, function table, and interner
// that the parser hands to the evaluator.
package ast

// Ident is an opaque handle to an interned identifier string. Equality and
// hashing are by the underlying integer. The zero value is a real
// identifier: the first interned string gets Ident(0), so callers should
// not treat Ident(0) as "absent".
type Ident int

// Interner canonicalizes identifier strings into small integer handles.
// Insertion order determines the Ident value: the first unique string
// interned gets 0, the next unique string gets 1, and so on. Interning an
// already-seen string returns the original Ident.
type Interner struct {
	strings []string
	index   map[string]Ident
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{index: make(map[string]Ident)}
}

// Intern returns the Ident for s, creating one if this is the first time s
// has been seen.
func (in *Interner) Intern(s string) Ident {
	if id, ok := in.index[s]; ok {
		return id
	}
	id := Ident(len(in.strings))
	in.strings = append(in.strings, s)
	in.index[s] = id
	return id
}

// Resolve returns the original string for id. Panics if id was never
// produced by this interner — that would be a bug in the caller, since
// Idents are never recycled or transferred across interners.
func (in *Interner) Resolve(id Ident) string {
	return in.strings[int(id)]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.strings)
}
