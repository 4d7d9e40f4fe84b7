//go:build eka_debug

package runtime

import "fmt"

// DebugBuild reports whether this binary was built with the eka_debug
// tag, and so runs the Gc's internal consistency checks.
const DebugBuild = true

// assertCellClean panics if dr is still present in any of the five sets.
// Built only under the eka_debug tag, mirroring the reference
// implementation's debug_assert! calls in cleanup_single_dead: a
// non-recyclable cell must have already been removed from every set
// before its contents are dropped, since nothing may hold a DataRef to a
// cell whose bundle is about to be discarded.
func (g *Gc) assertCellClean(dr DataRef) {
	if g.white.Contains(dr) {
		panic(fmt.Sprintf("eka: gc: dead cell %p still present in white set", dr.ptr))
	}
	if g.grey.Contains(dr) {
		panic(fmt.Sprintf("eka: gc: dead cell %p still present in grey set", dr.ptr))
	}
	if g.black.Contains(dr) {
		panic(fmt.Sprintf("eka: gc: dead cell %p still present in black set", dr.ptr))
	}
	if g.dead.Contains(dr) {
		panic(fmt.Sprintf("eka: gc: dead cell %p still present in dead set", dr.ptr))
	}
	if _, ok := g.roots[dr]; ok {
		panic(fmt.Sprintf("eka: gc: dead cell %p still present in roots", dr.ptr))
	}
}
