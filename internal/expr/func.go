package expr

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Variables are the free variables an expression may reference.
var Variables = []string{"x", "y"}

// Functions is the allow-list of callable names.
var Functions = map[string]func(float64) float64{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"arcsin": math.Asin,
	"arccos": math.Acos,
	"arctan": math.Atan,
	"exp":    math.Exp,
	"log":    math.Log,
	"abs":    math.Abs,
}

// Allowed returns every permitted identifier, sorted.
func Allowed() []string {
	names := append([]string{}, Variables...)
	for name := range Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isVariable(name string) bool {
	return name == "x" || name == "y"
}

// Func is a compiled, immutable f(x, y).
type Func struct {
	src  string
	root Node
}

// Compile parses and validates text. Syntax is checked first, then every
// identifier against the allow-list in source order, then call shapes.
func Compile(text string) (*Func, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmpty
	}
	if strings.HasPrefix(trimmed, diagPrefix) {
		return nil, ErrDiagnosticEcho
	}

	p, err := NewParser(trimmed)
	if err != nil {
		return nil, err
	}
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if err := checkNames(root); err != nil {
		return nil, err
	}
	if err := bindCalls(root); err != nil {
		return nil, err
	}
	return &Func{src: trimmed, root: root}, nil
}

// MustCompile is Compile for known-good literals; it panics on error.
func MustCompile(text string) *Func {
	f, err := Compile(text)
	if err != nil {
		panic(fmt.Sprintf("expr: MustCompile(%q): %v", text, err))
	}
	return f
}

func checkNames(root Node) error {
	var first *UndefinedSymbolError
	Walk(root, func(n Node) {
		if first != nil {
			return
		}
		var name string
		switch v := n.(type) {
		case *Ident:
			name = v.Name
		case *Call:
			name = v.Name
		default:
			return
		}
		if _, ok := Functions[name]; ok || isVariable(name) {
			return
		}
		first = &UndefinedSymbolError{Name: name, Pos: n.Pos()}
	})
	if first != nil {
		return first
	}
	return nil
}

func bindCalls(root Node) error {
	var bad error
	Walk(root, func(n Node) {
		if bad != nil {
			return
		}
		switch v := n.(type) {
		case *Ident:
			if _, ok := Functions[v.Name]; ok {
				bad = &SyntaxError{Pos: v.pos, Msg: fmt.Sprintf("%s must be called with one argument", v.Name)}
			}
		case *Call:
			fn, ok := Functions[v.Name]
			if !ok {
				bad = &SyntaxError{Pos: v.pos, Msg: fmt.Sprintf("%s is not callable", v.Name)}
				return
			}
			if len(v.Args) != 1 {
				bad = &SyntaxError{Pos: v.pos, Msg: fmt.Sprintf("%s takes exactly one argument (%d given)", v.Name, len(v.Args))}
				return
			}
			v.fn = fn
		}
	})
	return bad
}

func (f *Func) Source() string { return f.src }

// String returns the fully parenthesized form of the parsed tree.
func (f *Func) String() string { return f.root.String() }

// At evaluates f at a single point.
func (f *Func) At(x, y float64) float64 {
	return f.root.Eval(x, y)
}

// Grid evaluates f elementwise over a mesh. xs and ys must have the same
// shape, or one of them must be 1x1 and is broadcast.
func (f *Func) Grid(xs, ys [][]float64) ([][]float64, error) {
	rows, cols, err := broadcastShape(xs, ys)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = f.At(cell(xs, i, j), cell(ys, i, j))
		}
	}
	return out, nil
}

func shape(m [][]float64) (int, int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

func broadcastShape(a, b [][]float64) (int, int, error) {
	ar, ac := shape(a)
	br, bc := shape(b)
	for _, m := range [][][]float64{a, b} {
		for _, row := range m {
			if len(row) != len(m[0]) {
				return 0, 0, fmt.Errorf("%w: ragged rows", ErrShape)
			}
		}
	}
	switch {
	case ar == br && ac == bc:
		return ar, ac, nil
	case ar == 1 && ac == 1:
		return br, bc, nil
	case br == 1 && bc == 1:
		return ar, ac, nil
	}
	return 0, 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShape, ar, ac, br, bc)
}

func cell(m [][]float64, i, j int) float64 {
	if len(m) == 1 && len(m[0]) == 1 {
		return m[0][0]
	}
	return m[i][j]
}

// Evaluator holds the active function. A failed Submit leaves it untouched.
type Evaluator struct {
	active *Func
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Submit compiles text and, only on success, replaces the active function.
func (e *Evaluator) Submit(text string) (*Func, error) {
	f, err := Compile(text)
	if err != nil {
		return nil, err
	}
	e.active = f
	return f, nil
}

// Active returns the last successfully submitted function, or nil.
func (e *Evaluator) Active() *Func { return e.active }
