package runtime

import (
	"testing"

	"github.com/eka-lang/eka/internal/ast"
)

// probe is a minimal Bundle used to exercise Gc without pulling in any
// real object kind.
type probe struct {
	finalizeCount int
	recyclable    bool
	children      []DataRef
}

func (p *probe) Get(ast.Ident, *ast.Interner) (Primitive, error) { return Primitive{}, nil }
func (p *probe) Set(ast.Ident, Primitive, *ast.Interner) error   { return nil }
func (p *probe) Call([]Primitive, *ast.Interner, *Gc) (CallReturn, error) {
	return CallReturn{}, nil
}
func (p *probe) Method(ast.Ident, []Primitive, *ast.Interner, *Gc) (CallReturn, error) {
	return CallReturn{}, nil
}
func (p *probe) Trace(gc *Gc) {
	for _, c := range p.children {
		gc.Trace(c)
	}
}
func (p *probe) Finalize()        { p.finalizeCount++ }
func (p *probe) CanRecycle() bool { return p.recyclable }

func newProbe() *probe { return &probe{recyclable: true} }

// assertDisjoint fails the test if any DataRef appears in more than one
// of white/grey/black/dead.
func assertDisjoint(t *testing.T, g *Gc) {
	t.Helper()
	seen := make(map[DataRef]string)
	check := func(name string, s *orderedSet[DataRef]) {
		for _, v := range s.items {
			if prev, ok := seen[v]; ok {
				t.Fatalf("DataRef present in both %s and %s", prev, name)
			}
			seen[v] = name
		}
	}
	check("white", g.white)
	check("grey", g.grey)
	check("black", g.black)
	check("dead", g.dead)
}

func TestGcSetsStayDisjoint(t *testing.T) {
	g := NewGc()
	for i := 0; i < 10; i++ {
		g.Alloc(newProbe())
		assertDisjoint(t, g)
	}
	for i := 0; i < 20; i++ {
		g.GcInc()
		assertDisjoint(t, g)
	}
}

func TestGcRootsSubsetOfLiveSets(t *testing.T) {
	g := NewGc()
	dr := g.Alloc(newProbe())
	root, ok := g.Root(dr)
	if !ok {
		t.Fatalf("expected fresh root to succeed")
	}

	// Drive a handful of full cycles so the root passes through every
	// phase at least once.
	for i := 0; i < 12; i++ {
		g.GcInc()
	}

	if g.dead.Contains(root.Ref) {
		t.Fatalf("rooted object ended up in dead set")
	}
	if !(g.white.Contains(root.Ref) || g.grey.Contains(root.Ref) || g.black.Contains(root.Ref)) {
		t.Fatalf("rooted object is not in white, grey, or black")
	}
}

func TestGcDoubleRootFails(t *testing.T) {
	g := NewGc()
	dr := g.Alloc(newProbe())
	if _, ok := g.Root(dr); !ok {
		t.Fatalf("expected first root to succeed")
	}
	if _, ok := g.Root(dr); ok {
		t.Fatalf("expected second root of the same handle to fail")
	}
}

func TestGcRecycleAddressStabilityAndFinalizeOnce(t *testing.T) {
	g := NewGc()
	// Each Alloc already drives one GcInc step since the dead list
	// starts empty and GcWhenNoDead defaults true; a and b are never
	// rooted, so once a full mark/trace/sweep cycle completes they are
	// unreachable and collected.
	a := newProbe()
	drA := g.Alloc(a)
	b := newProbe()
	drB := g.Alloc(b)
	c := newProbe()
	_ = g.Alloc(c)

	// Drive exactly the remaining steps of the in-progress cycle: one
	// more MarkRoots (no-op, nothing rooted), one Trace (drains c into
	// black), and one MarkDead (sweeps a and b, which were never
	// rooted, into the dead list).
	for i := 0; i < 3; i++ {
		g.GcInc()
	}

	if a.finalizeCount != 1 || b.finalizeCount != 1 {
		t.Fatalf("expected a and b to be finalized exactly once each, got a=%d b=%d", a.finalizeCount, b.finalizeCount)
	}
	if g.dead.Len() != 2 {
		t.Fatalf("expected 2 recyclable dead cells, got %d", g.dead.Len())
	}

	oldAddrs := map[*cell]bool{drA.ptr: true, drB.ptr: true}

	d := newProbe()
	drD := g.Alloc(d) // recycles one of the dead cells
	if !oldAddrs[drD.ptr] {
		t.Fatalf("expected recycled DataRef to reuse a prior cell address")
	}
	if drD.Bundle().(*probe) != d {
		t.Fatalf("expected recycled cell to now hold the newly allocated data")
	}

	// The finalize counts on the no-longer-referenced original occupants
	// must not have changed again just because the cell was reused.
	if a.finalizeCount != 1 || b.finalizeCount != 1 {
		t.Fatalf("finalize count changed after recycling: a=%d b=%d", a.finalizeCount, b.finalizeCount)
	}
}

func TestGcTraceReachesChildren(t *testing.T) {
	g := NewGc()
	childProbe := newProbe()
	childRef := g.Alloc(childProbe)
	parentProbe := &probe{recyclable: true, children: []DataRef{childRef}}
	parentRef := g.Alloc(parentProbe)
	if _, ok := g.Root(parentRef); !ok {
		t.Fatalf("expected root to succeed")
	}

	for i := 0; i < 12; i++ {
		g.GcInc()
	}

	if g.dead.Contains(childRef) {
		t.Fatalf("child reachable from a root was swept to dead")
	}
}

func TestGcUnrootAllowsCollection(t *testing.T) {
	g := NewGc()
	dr := g.Alloc(newProbe())
	root, _ := g.Root(dr)
	g.Unroot(root)

	for i := 0; i < 12; i++ {
		g.GcInc()
	}

	if !g.dead.Contains(dr) {
		t.Fatalf("expected unrooted, unreferenced object to become dead")
	}
}
