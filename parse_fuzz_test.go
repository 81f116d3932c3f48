package evaler_test

import (
	"testing"

	"github.com/zephyrtronium/evaler"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("1×2")
	f.Add(`print("a", eval(x, x=1))`)
	f.Add("min(1, 2), 3")
	f.Add(`print("a\tb\n", 1/0)`)
	f.Fuzz(func(t *testing.T, src string) {
		s := evaler.NewSlab()
		e, err := evaler.ParseString(src, s)
		if err != nil {
			if _, ok := err.(evaler.InputError); !ok {
				t.Errorf("%q gave non-InputError %#v", src, err)
			}
			return
		}
		// Formatting a parsed expression gives the same expression.
		str := s.ExprString(e)
		e2, err := evaler.ParseString(str, s)
		if err != nil {
			t.Fatalf("%q formatted as %q, which failed to parse: %v", src, str, err)
		}
		if again := s.ExprString(e2); again != str {
			t.Errorf("%q formatted as %q, which formatted as %q", src, str, again)
		}
	})
}
