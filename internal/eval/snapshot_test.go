package eval

import (
	"fmt"
	"strings"
	"testing"

	"github.com/eka-lang/eka/internal/host"
	"github.com/eka-lang/eka/internal/parser"
	"github.com/eka-lang/eka/internal/runtime"
	"github.com/gkampitakis/go-snaps/snaps"
)

// programs is a small corpus of short .eka programs: integer arithmetic,
// scoping, user functions, cond with a default, a keyword literal, and
// float arithmetic.
var programs = map[string]string{
	"arithmetic":      "(+ 1 (* 2 3) (- 10 4))",
	"scoping":         "(begin (def x 1) (begin (def x 2) x))",
	"function":        "(defn addOne [n] (+ n 1)) (addOne (addOne 5))",
	"cond_default":    "(cond (#f 1) (default 42))",
	"keyword_literal": ":ok",
	"float_add":       "(+ 1.5 2.5)",
}

func TestEkaProgramSnapshots(t *testing.T) {
	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			res, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			e := New(res.Interner)
			var out strings.Builder
			console := host.NewConsole(strings.NewReader(""), &out, &out, e.Interner)
			e.DefGlobal(e.Interner.Intern("console"), runtime.DataValue(e.Gc.Alloc(console)))

			v, err := e.Run(res.Exprs, res.Funcs)
			rendered := fmt.Sprintf("result=%s stdout=%q err=%v", formatResult(v, e), out.String(), err)
			snaps.MatchSnapshot(t, name, rendered)
		})
	}
}

func formatResult(v runtime.Primitive, e *Evaluator) string {
	ret, err := Format([]runtime.Primitive{v}, e.Interner, e.Gc)
	if err != nil {
		return fmt.Sprintf("<unformattable: %v>", err)
	}
	return ret.Data.Str()
}
