package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/evaler"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb        string
		with                [][2]string
		nl, echo, comp, vrs bool
		maxdepth            int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parsed expressions")
	flag.BoolVar(&comp, "compile", false, "evaluate compiled instructions instead of parse trees")
	flag.BoolVar(&vrs, "vars", false, "list the variables each expression reads instead of evaluating")
	flag.IntVar(&maxdepth, "depth", evaler.DefaultMaxDepth, "maximum evaluation nesting depth")
	flag.Parse()
	if maxdepth <= 0 {
		log.Fatalf("depth (%d) must be positive", maxdepth)
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	opts := []evaler.EvalOption{evaler.MaxDepth(maxdepth)}
	ns := evaler.NewScopes()
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := evaler.EvalString(vl, ns.Clone(), opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ns.Set(nm, r)
	}

	s := evaler.NewSlab()
	var p []evaler.ExprIndex
	var popts []evaler.ParseOption
	if nl {
		popts = append(popts, evaler.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := evaler.Parse(in, s, popts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	verb += "\n"
	for _, a := range p {
		if echo {
			fmt.Printf("%s : ", s.ExprString(a))
		}
		if vrs {
			names, err := evaler.VarNames(s, a)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(strings.Join(names, " "))
			continue
		}
		r, err := eval(s, a, ns, comp, echo, opts)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

// eval evaluates a parsed expression, first compiling it if comp is set.
func eval(s *evaler.Slab, a evaler.ExprIndex, ns *evaler.Scopes, comp, echo bool, opts []evaler.EvalOption) (float64, error) {
	if !comp {
		return evaler.EvalExpr(s, a, ns, opts...)
	}
	c, err := evaler.Compile(s, a)
	if err != nil {
		return 0, err
	}
	if echo {
		fmt.Printf("\n%s", s.InstrString(c))
	}
	return evaler.EvalInstr(s, c, ns, opts...)
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
