package expr

import "fmt"

// Parser is a recursive-descent parser over the token stream.
//
//	expr  := term (('+'|'-') term)*
//	term  := unary (('*'|'/') unary)*
//	unary := ('+'|'-') unary | power
//	power := atom ['**' unary]
//	atom  := NUMBER | NAME | NAME '(' [expr (',' expr)*] ')' | '(' expr ')'
type Parser struct {
	lexer   *Lexer
	current Token
}

func NewParser(input string) (*Parser, error) {
	p := &Parser{lexer: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) expect(t TokenType) error {
	if p.current.Type != t {
		return p.unexpected(fmt.Sprintf("expected %s", t))
	}
	return p.advance()
}

func (p *Parser) unexpected(want string) error {
	got := p.current.Type.String()
	if p.current.Text != "" {
		got = fmt.Sprintf("%q", p.current.Text)
	}
	return &SyntaxError{Pos: p.current.Pos, Msg: fmt.Sprintf("%s, got %s", want, got)}
}

// Parse reads one complete expression. Trailing tokens are an error.
func (p *Parser) Parse() (Node, error) {
	if p.current.Type == TokEOF {
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: "empty expression"}
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokEOF {
		return nil, p.unexpected("expected operator")
	}
	return n, nil
}

func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokPlus || p.current.Type == TokMinus {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, pos: op.Pos}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for isMulOp(p.current.Type) {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Type, Left: left, Right: right, pos: op.Pos}
	}
	return left, nil
}

func isMulOp(t TokenType) bool {
	return t == TokStar || t == TokSlash || t == TokFloorDiv || t == TokPercent
}

func (p *Parser) parseUnary() (Node, error) {
	if p.current.Type == TokPlus || p.current.Type == TokMinus {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op.Type, Operand: operand, pos: op.Pos}, nil
	}
	return p.parsePower()
}

// parsePower makes ** right-associative and lets its exponent carry a sign,
// so 2**-1 and 2**3**2 read the usual way while -x**2 is -(x**2).
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokPow {
		return base, nil
	}
	op := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: TokPow, Left: base, Right: exp, pos: op.Pos}, nil
}

func (p *Parser) parseAtom() (Node, error) {
	tok := p.current
	switch tok.Type {
	case TokNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Num{Value: tok.Number, pos: tok.Pos}, nil

	case TokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.current.Type != TokLParen {
			return &Ident{Name: tok.Text, pos: tok.Pos}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		call := &Call{Name: tok.Text, pos: tok.Pos}
		if p.current.Type != TokRParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if p.current.Type != TokComma {
					break
				}
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return call, nil

	case TokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected("expected number, name or '('")
}
