package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

func TestConsoleReadLine(t *testing.T) {
	interner := ast.NewInterner()
	var out, errOut bytes.Buffer
	c := NewConsole(strings.NewReader("hi\n"), &out, &errOut, interner)

	ret, err := c.Method(interner.Intern("readLine"), nil, interner, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.Data.Str() != "hi\n" {
		t.Fatalf("got %q", ret.Data.Str())
	}
}

func TestConsolePrintAndEprint(t *testing.T) {
	interner := ast.NewInterner()
	var out, errOut bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out, &errOut, interner)

	if _, err := c.Method(interner.Intern("print"), []runtime.Primitive{runtime.StringValue("hello")}, interner, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hello" {
		t.Fatalf("got %q", out.String())
	}

	if _, err := c.Method(interner.Intern("eprint"), []runtime.Primitive{runtime.StringValue("oops")}, interner, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errOut.String() != "oops" {
		t.Fatalf("got %q", errOut.String())
	}
}

func TestConsoleRejectsUnknownMethod(t *testing.T) {
	interner := ast.NewInterner()
	var out, errOut bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out, &errOut, interner)

	if _, err := c.Method(interner.Intern("bogus"), nil, interner, nil); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestGcWorkloadBridgeGetSet(t *testing.T) {
	interner := ast.NewInterner()
	gc := runtime.NewGc()
	b := NewGcWorkloadBridge(gc, interner)

	if err := b.Set(interner.Intern("traces"), runtime.NumberValue(42), interner); err != nil {
		t.Fatalf("unexpected error on successful set: %v", err)
	}
	v, err := b.Get(interner.Intern("traces"), interner)
	if err != nil || v.Number() != 42 {
		t.Fatalf("got %+v, %v", v, err)
	}
	if gc.Workload.Traces != 42 {
		t.Fatalf("Set did not take effect on the underlying Gc: %d", gc.Workload.Traces)
	}

	if err := b.Set(interner.Intern("gcWhenNoDead"), runtime.BoolValue(false), interner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gc.Workload.GcWhenNoDead {
		t.Fatal("expected gcWhenNoDead to be false after set")
	}
}

func TestGcWorkloadBridgeRejectsWrongType(t *testing.T) {
	interner := ast.NewInterner()
	gc := runtime.NewGc()
	b := NewGcWorkloadBridge(gc, interner)

	if err := b.Set(interner.Intern("traces"), runtime.StringValue("nope"), interner); err == nil {
		t.Fatal("expected error setting a Number field to a String")
	}
}

func TestInstantNowAndDuration(t *testing.T) {
	interner := ast.NewInterner()
	gc := runtime.NewGc()

	ret, err := InstantNow(nil, interner, gc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instantRef := ret.Data.Data()

	callRet, err := instantRef.Bundle().Call(nil, interner, gc)
	if err != nil {
		t.Fatalf("unexpected error calling Instant: %v", err)
	}
	durationRef := callRet.Data.Data()

	strRet, err := durationRef.Bundle().Call(nil, interner, gc)
	if err != nil {
		t.Fatalf("unexpected error calling Duration: %v", err)
	}
	if strRet.Data.Kind != runtime.KindString {
		t.Fatalf("expected Duration.call to yield a String, got %s", strRet.Data.Kind)
	}
}

func TestMakeBaseAllocatesFieldlessObject(t *testing.T) {
	interner := ast.NewInterner()
	gc := runtime.NewGc()

	ret, err := MakeBase(nil, interner, gc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj := ret.Data.Data().Bundle()
	if err := obj.Set(interner.Intern("a"), runtime.NumberValue(1), interner); err != nil {
		t.Fatalf("unexpected error setting a field: %v", err)
	}
	v, err := obj.Get(interner.Intern("a"), interner)
	if err != nil || v.Number() != 1 {
		t.Fatalf("got %+v, %v", v, err)
	}
}
