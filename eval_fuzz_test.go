package evaler_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/zephyrtronium/evaler"
)

func FuzzEval(f *testing.F) {
	for _, src := range corpus {
		f.Add(src)
	}
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, src string) {
		s := evaler.NewSlab()
		e, err := evaler.ParseString(src, s)
		if err != nil {
			return
		}
		c, err := evaler.Compile(s, e)
		if err != nil {
			t.Fatalf("%q parsed but did not compile: %v", src, err)
		}
		resolve := evaler.Resolver(func(string) (float64, bool) { return 1.5, true })
		tree, terr := evaler.EvalExpr(s, e, evaler.NewScopes(resolve), evaler.Output(io.Discard))
		instr, ierr := evaler.EvalInstr(s, c, evaler.NewScopes(resolve), evaler.Output(io.Discard))
		var d *evaler.DepthError
		if errors.As(terr, &d) || errors.As(ierr, &d) {
			// Compiled code nests differently.
			return
		}
		if (terr != nil) != (ierr != nil) {
			t.Fatalf("%q: tree error %v, instr error %v", src, terr, ierr)
		}
		if terr != nil {
			return
		}
		if math.IsNaN(tree) != math.IsNaN(instr) {
			t.Fatalf("%q: tree %g, instr %g", src, tree, instr)
		}
		if !math.IsNaN(tree) && math.Float64bits(tree) != math.Float64bits(instr) {
			t.Fatalf("%q: tree %g, instr %g", src, tree, instr)
		}
	})
}
