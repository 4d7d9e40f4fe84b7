package runtime

import "testing"

func TestPrimitiveConstructorsRoundTrip(t *testing.T) {
	if NumberValue(42).Number() != 42 {
		t.Error("Number round-trip failed")
	}
	if FloatValue(3.5).Float() != 3.5 {
		t.Error("Float round-trip failed")
	}
	if StringValue("hi").Str() != "hi" {
		t.Error("String round-trip failed")
	}
	if CharValue('x').Char() != 'x' {
		t.Error("Char round-trip failed")
	}
	if !BoolValue(true).Bool() {
		t.Error("Bool round-trip failed")
	}
	if None.Kind != KindNone {
		t.Error("None has wrong Kind")
	}
}

func TestPrimitiveAccessorPanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic accessing Number() on a String primitive")
		}
	}()
	StringValue("hi").Number()
}

func TestCallReturnConstructors(t *testing.T) {
	cr := ReturnData(NumberValue(1))
	if cr.Kind != CallReturnData || cr.Data.Number() != 1 {
		t.Errorf("got %+v", cr)
	}
	cr2 := ReturnCallFn(5, []Primitive{NumberValue(2)})
	if cr2.Kind != CallReturnCallFn || cr2.Fn != 5 || len(cr2.Args) != 1 {
		t.Errorf("got %+v", cr2)
	}
}
