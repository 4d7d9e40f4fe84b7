package ast

import "testing"

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	words := []string{"foo", "bar", "baz", "foo", "quux", "bar"}

	ids := make([]Ident, len(words))
	for i, w := range words {
		ids[i] = in.Intern(w)
	}

	for i, w := range words {
		if got := in.Resolve(ids[i]); got != w {
			t.Errorf("Resolve(Intern(%q)) = %q", w, got)
		}
	}

	if ids[0] != ids[3] {
		t.Errorf("Intern(\"foo\") twice produced different idents: %v vs %v", ids[0], ids[3])
	}
	if ids[1] != ids[5] {
		t.Errorf("Intern(\"bar\") twice produced different idents: %v vs %v", ids[1], ids[5])
	}
	if ids[0] == ids[1] || ids[1] == ids[2] {
		t.Errorf("distinct strings interned to the same ident")
	}
}

func TestInternerInsertionOrder(t *testing.T) {
	in := NewInterner()
	a := in.Intern("a")
	b := in.Intern("b")
	c := in.Intern("c")

	if a != 0 || b != 1 || c != 2 {
		t.Errorf("expected sequential idents 0,1,2; got %v,%v,%v", a, b, c)
	}
	if in.Len() != 3 {
		t.Errorf("Len() = %d, want 3", in.Len())
	}
}
