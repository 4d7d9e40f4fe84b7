package runtime

import "reflect"

// cell is the fixed-address box a DataRef points to. Its address, not its
// contents, is what recycling preserves: a dead cell's bundle field is
// overwritten in place so any DataRef still holding that pointer (there
// should be none, by construction, once the original owner is
// unreachable) observes the new occupant rather than a freed block.
type cell struct {
	bundle Bundle
}

// DataRef is an identity-equal, content-independent handle to a heap
// cell: two DataRefs are equal iff they name the same cell, regardless of
// what that cell currently holds. A DataRef survives recycling — it keeps
// pointing at the same address even after the cell's contents change —
// which is exactly why nothing may dereference a DataRef once the object
// it was obtained from is no longer reachable.
type DataRef struct {
	ptr *cell
}

// Bundle returns the object currently occupying the cell.
func (d DataRef) Bundle() Bundle {
	return d.ptr.bundle
}

// RootDataRef pins its DataRef against collection until Gc.Unroot is
// called on it.
type RootDataRef struct {
	Ref DataRef
}

// Bundle returns the object currently occupying the rooted cell.
func (r RootDataRef) Bundle() Bundle {
	return r.Ref.Bundle()
}

// GcState is the incremental collector's current phase.
type GcState byte

const (
	GcStateMarkRoots GcState = iota
	GcStateTrace
	GcStateMarkDead
)

// GcWorkload tunes how much work one GcInc step does. Unlike the
// reference implementation's process-wide thread_local, this is carried
// as a field on Gc: a script has exactly one Gc instance per run, so an
// instance field gives the same "one configuration per process" behavior
// the design calls for without reaching for global mutable state.
type GcWorkload struct {
	Traces       int
	MarkDead     int
	GcWhenNoDead bool
}

// DefaultGcWorkload matches the reference implementation's defaults.
func DefaultGcWorkload() GcWorkload {
	return GcWorkload{Traces: 100, MarkDead: 10, GcWhenNoDead: true}
}

// Gc is an incremental tricolor mark-sweep collector with cell recycling.
// Every allocation does at most one GcInc step of work; there is no
// background collection thread; and because roots (scopes and globals)
// live outside the heap and are rescanned from scratch at the start of
// every cycle, no write barrier is needed to keep the tricolor invariant
// across steps in this single-threaded setting.
type Gc struct {
	white *orderedSet[DataRef]
	grey  *orderedSet[DataRef]
	black *orderedSet[DataRef]
	dead  *orderedSet[DataRef]
	roots map[DataRef]struct{}
	state GcState

	Workload GcWorkload
}

// NewGc creates an empty Gc with the default workload.
func NewGc() *Gc {
	return &Gc{
		white:    newOrderedSet[DataRef](),
		grey:     newOrderedSet[DataRef](),
		black:    newOrderedSet[DataRef](),
		dead:     newOrderedSet[DataRef](),
		roots:    make(map[DataRef]struct{}),
		state:    GcStateMarkRoots,
		Workload: DefaultGcWorkload(),
	}
}

// Root pins dr against collection, returning the RootDataRef that does
// so. Returns false if dr is already rooted (matching the reference
// implementation, which refuses to double-root a handle).
func (g *Gc) Root(dr DataRef) (RootDataRef, bool) {
	if _, ok := g.roots[dr]; ok {
		return RootDataRef{}, false
	}
	g.roots[dr] = struct{}{}
	return RootDataRef{Ref: dr}, true
}

// Unroot releases a previously rooted handle.
func (g *Gc) Unroot(r RootDataRef) {
	delete(g.roots, r.Ref)
}

// Alloc places data in a heap cell, recycling a dead cell if one is
// available, and returns its handle. A freshly allocated or recycled cell
// starts grey — already reachable from the allocation site that's about to
// store its handle somewhere — never white, so it can never be collected
// before anything roots it.
func (g *Gc) Alloc(data Bundle) DataRef {
	if dr, ok := g.dead.SwapRemoveFront(); ok {
		rec, ok := dr.ptr.bundle.(Recycler)
		if ok && reflect.TypeOf(dr.ptr.bundle) == reflect.TypeOf(data) {
			rec.RecycleInsert(data)
		} else {
			dr.ptr.bundle = data
		}
		g.grey.Insert(dr)
		return dr
	}

	dr := DataRef{ptr: &cell{bundle: data}}
	g.grey.Insert(dr)

	if g.dead.Len() == 0 && g.Workload.GcWhenNoDead {
		g.GcInc()
	}

	return dr
}

// Trace marks ptr reachable. Called by a Bundle's Trace method for every
// DataRef it holds. A black object does not get re-marked grey — the
// reference implementation's debug assertions state the invariant this
// preserves: a black object is never found in white or grey.
func (g *Gc) Trace(ptr DataRef) {
	if g.black.Contains(ptr) {
		return
	}
	g.white.Remove(ptr)
	g.grey.Insert(ptr)
}

// GcInc performs one step of incremental collection, advancing the state
// machine: MarkRoots seeds grey from the current root set, Trace drains
// grey into black (tracing each object's children as it goes), and
// MarkDead sweeps what's left white into the dead list for recycling,
// flipping white and black to start the next cycle once the sweep is
// complete.
func (g *Gc) GcInc() {
	switch g.state {
	case GcStateMarkRoots:
		g.markRoots()
		g.state = GcStateTrace
	case GcStateTrace:
		g.trace()
		if g.grey.IsEmpty() {
			g.state = GcStateMarkDead
		}
	case GcStateMarkDead:
		g.markDead()
		if g.white.IsEmpty() {
			g.white, g.black = g.black, g.white
			g.state = GcStateMarkRoots
		}
	}
}

func (g *Gc) markRoots() {
	for root := range g.roots {
		g.grey.Insert(root)
		g.white.Remove(root)
	}
}

func (g *Gc) trace() {
	count := 0
	for {
		dr, ok := g.grey.ShiftRemoveFront()
		if !ok {
			break
		}
		g.black.Insert(dr)
		dr.ptr.bundle.Trace(g)

		count++
		if count > g.Workload.Traces {
			break
		}
	}
}

func (g *Gc) markDead() {
	count := 0
	for {
		dr, ok := g.white.SwapRemoveFront()
		if !ok {
			break
		}
		if f, ok := dr.ptr.bundle.(Finalizer); ok {
			f.Finalize()
		}
		canRecycle := true
		if r, ok := dr.ptr.bundle.(Recyclable); ok {
			canRecycle = r.CanRecycle()
		}
		if canRecycle {
			g.dead.Insert(dr)
		} else {
			// Nothing may still hold a DataRef into a cell whose bundle is
			// about to be discarded; assertCellClean panics (debug builds
			// only) if that invariant doesn't hold. Go reclaims the
			// backing memory once nothing references the cell.
			g.assertCellClean(dr)
		}

		count++
		if count > g.Workload.MarkDead {
			break
		}
	}
}

// Stats reports the current size of each internal set, for diagnostics
// and tests.
type Stats struct {
	White, Grey, Black, Dead, Roots int
	State                           GcState
}

func (g *Gc) Stats() Stats {
	return Stats{
		White: g.white.Len(),
		Grey:  g.grey.Len(),
		Black: g.black.Len(),
		Dead:  g.dead.Len(),
		Roots: len(g.roots),
		State: g.state,
	}
}
