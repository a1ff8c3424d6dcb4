package expr

import (
	"math"
	"strconv"
	"strings"
)

// Node is one vertex of a parsed expression tree.
type Node interface {
	Eval(x, y float64) float64
	String() string
	Pos() int
}

type Num struct {
	Value float64
	pos   int
}

func (n *Num) Eval(_, _ float64) float64 { return n.Value }
func (n *Num) Pos() int                  { return n.pos }
func (n *Num) String() string            { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Ident is a bare name. Only x and y evaluate; anything else is rejected
// before evaluation.
type Ident struct {
	Name string
	pos  int
}

func (i *Ident) Eval(x, y float64) float64 {
	switch i.Name {
	case "x":
		return x
	case "y":
		return y
	}
	return math.NaN()
}

func (i *Ident) Pos() int       { return i.pos }
func (i *Ident) String() string { return i.Name }

type Unary struct {
	Op      TokenType
	Operand Node
	pos     int
}

func (u *Unary) Eval(x, y float64) float64 {
	v := u.Operand.Eval(x, y)
	if u.Op == TokMinus {
		return -v
	}
	return v
}

func (u *Unary) Pos() int { return u.pos }

func (u *Unary) String() string {
	if u.Op == TokMinus {
		return "(-" + u.Operand.String() + ")"
	}
	return "(+" + u.Operand.String() + ")"
}

var opSymbols = map[TokenType]string{
	TokPlus:     " + ",
	TokMinus:    " - ",
	TokStar:     " * ",
	TokSlash:    " / ",
	TokFloorDiv: " // ",
	TokPercent:  " % ",
	TokPow:      "**",
}

type Binary struct {
	Op          TokenType
	Left, Right Node
	pos         int
}

func (b *Binary) Eval(x, y float64) float64 {
	l, r := b.Left.Eval(x, y), b.Right.Eval(x, y)
	switch b.Op {
	case TokPlus:
		return l + r
	case TokMinus:
		return l - r
	case TokStar:
		return l * r
	case TokSlash:
		return l / r
	case TokFloorDiv:
		return math.Floor(l / r)
	case TokPercent:
		return floorMod(l, r)
	case TokPow:
		return math.Pow(l, r)
	}
	return math.NaN()
}

func (b *Binary) Pos() int { return b.pos }

// floorMod is the remainder that takes the sign of r, so -1 % 3 is 2.
// A zero divisor gives NaN.
func floorMod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + opSymbols[b.Op] + b.Right.String() + ")"
}

// Call applies a unary math function. Args holds everything written between
// the parentheses so arity can be reported after name checking.
type Call struct {
	Name string
	Args []Node
	fn   func(float64) float64
	pos  int
}

func (c *Call) Eval(x, y float64) float64 {
	if c.fn == nil || len(c.Args) != 1 {
		return math.NaN()
	}
	return c.fn(c.Args[0].Eval(x, y))
}

func (c *Call) Pos() int { return c.pos }

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Walk visits n and its children depth-first, left to right.
func Walk(n Node, visit func(Node)) {
	visit(n)
	switch v := n.(type) {
	case *Unary:
		Walk(v.Operand, visit)
	case *Binary:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *Call:
		for _, a := range v.Args {
			Walk(a, visit)
		}
	}
}
