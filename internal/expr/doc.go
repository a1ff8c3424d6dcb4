// Package expr compiles the right-hand side of dy/dx = f(x, y) from text.
//
// Input is a restricted arithmetic language: numeric literals, the variables
// x and y, the operators + - * / // % ** with unary signs, parentheses, and calls to
// sin, cos, tan, arcsin, arccos, arctan, exp, log and abs. Text is parsed into
// a tree and evaluated by a small interpreter; nothing is ever executed.
//
// Checking happens in the same order a reader would expect: malformed text is
// a [SyntaxError]; well-formed text naming anything outside the allow-list is
// an [UndefinedSymbolError] for the first such name. Arithmetic follows
// IEEE-754, so 1/0 is +Inf and log(-1) is NaN rather than an error. Floor
// division and % round toward negative infinity: -7 // 2 is -4 and -7 % 2 is 1.
package expr
