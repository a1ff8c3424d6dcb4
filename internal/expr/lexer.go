package expr

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

type TokenType int

const (
	TokEOF TokenType = iota
	TokNumber
	TokIdent
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokFloorDiv
	TokPercent
	TokPow
	TokLParen
	TokRParen
	TokComma
)

var tokenNames = map[TokenType]string{
	TokEOF:      "end of input",
	TokNumber:   "number",
	TokIdent:    "name",
	TokPlus:     "'+'",
	TokMinus:    "'-'",
	TokStar:     "'*'",
	TokSlash:    "'/'",
	TokFloorDiv: "'//'",
	TokPercent:  "'%'",
	TokPow:      "'**'",
	TokLParen:   "'('",
	TokRParen:   "')'",
	TokComma:    "','",
}

func (t TokenType) String() string { return tokenNames[t] }

type Token struct {
	Type   TokenType
	Text   string
	Pos    int
	Number float64
}

type Lexer struct {
	src []rune
	pos int
}

func NewLexer(input string) *Lexer {
	return &Lexer{src: []rune(input)}
}

// Next returns the next token or a *SyntaxError for characters outside the language.
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Type: TokEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	case c == '_' || unicode.IsLetter(c):
		for l.pos < len(l.src) && (l.src[l.pos] == '_' || unicode.IsLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
			l.pos++
		}
		return Token{Type: TokIdent, Text: string(l.src[start:l.pos]), Pos: start}, nil
	}

	l.pos++
	switch c {
	case '+':
		return Token{Type: TokPlus, Text: "+", Pos: start}, nil
	case '-':
		return Token{Type: TokMinus, Text: "-", Pos: start}, nil
	case '*':
		if l.pos < len(l.src) && l.src[l.pos] == '*' {
			l.pos++
			return Token{Type: TokPow, Text: "**", Pos: start}, nil
		}
		return Token{Type: TokStar, Text: "*", Pos: start}, nil
	case '/':
		if l.pos < len(l.src) && l.src[l.pos] == '/' {
			l.pos++
			return Token{Type: TokFloorDiv, Text: "//", Pos: start}, nil
		}
		return Token{Type: TokSlash, Text: "/", Pos: start}, nil
	case '%':
		return Token{Type: TokPercent, Text: "%", Pos: start}, nil
	case '(':
		return Token{Type: TokLParen, Text: "(", Pos: start}, nil
	case ')':
		return Token{Type: TokRParen, Text: ")", Pos: start}, nil
	case ',':
		return Token{Type: TokComma, Text: ",", Pos: start}, nil
	}
	return Token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// number scans digits [. digits] [e [+-] digits]. A letter glued to the
// literal (2x) is left for the parser to reject.
func (l *Lexer) number() (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	text := string(l.src[start:l.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("bad number %q", text)}
	}
	return Token{Type: TokNumber, Text: text, Pos: start, Number: v}, nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
