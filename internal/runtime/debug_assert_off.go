//go:build !eka_debug

package runtime

// DebugBuild reports whether this binary was built with the eka_debug
// tag, and so runs the Gc's internal consistency checks.
const DebugBuild = false

// assertCellClean is a no-op in non-debug builds, same tradeoff the
// reference implementation makes by compiling debug_assert! out of
// release builds.
func (g *Gc) assertCellClean(DataRef) {}
