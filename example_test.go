package evaler_test

import (
	"fmt"
	"os"

	"github.com/zephyrtronium/evaler"
)

func ExampleEvalString() {
	ns := evaler.NewScopes(evaler.SetVar("x", 3))
	r, err := evaler.EvalString("eval(x^2 + y, y=1)", ns)
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output: 10
}

func ExampleOutput() {
	ns := evaler.NewScopes(evaler.SetVar("x", 0.5))
	_, err := evaler.EvalString(`print("x is", x)`, ns, evaler.Output(os.Stdout))
	if err != nil {
		panic(err)
	}
	// Output: x is 0.5
}

func ExampleVarNames() {
	s := evaler.NewSlab()
	e, err := evaler.ParseString("x && y || z", s)
	if err != nil {
		panic(err)
	}
	names, err := evaler.VarNames(s, e)
	if err != nil {
		panic(err)
	}
	fmt.Println(names)
	// Output: [x z]
}

func ExampleCompile() {
	s := evaler.NewSlab()
	e, err := evaler.ParseString("1/x - 2*3", s)
	if err != nil {
		panic(err)
	}
	c, err := evaler.Compile(s, e)
	if err != nil {
		panic(err)
	}
	fmt.Print(s.InstrString(c))
	r, err := evaler.EvalInstr(s, c, evaler.NewScopes(evaler.SetVar("x", 4)))
	if err != nil {
		panic(err)
	}
	fmt.Println(r)
	// Output:
	// 1: Var x
	// 4: Inv @1
	// 6: Const -6
	// 7: Add @4 @6
	// -5.75
}
