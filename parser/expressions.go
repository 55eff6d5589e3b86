package parser

import (
	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/token"
)

// expression → assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → conditional ( (=|-=|%=|+=|/=|*=) assignment )?
func (p *Parser) assignment() ast.Expr {
	expr := p.conditional()

	if p.match(token.EQ, token.MINUSEQ, token.MODEQ, token.PLUSEQ, token.SLASHEQ, token.STAREQ) {
		op := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Op: op, Value: value}
		case *ast.Get:
			if op.Kind != token.EQ {
				p.error(op, "Augmented assignment to a property is not supported.")
				return expr
			}
			return &ast.Set{Obj: target.Obj, Name: target.Name, Value: value}
		default:
			p.error(op, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

// conditional → logic_or ( '?' assignment ':' assignment )*
func (p *Parser) conditional() ast.Expr {
	expr := p.logicOr()
	for p.match(token.QUESTION) {
		then := p.assignment()
		p.consume(token.COLON, "Expect ':' after then-branch of conditional expression.")
		elseBranch := p.assignment()
		expr = &ast.Conditional{Cond: expr, Then: then, Else: elseBranch}
	}
	return expr
}

// logic_or → logic_and ( '||' logic_and )*
func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// logic_and → equality ( '&&' equality )*
func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality → comparison ( (!=|==) comparison )*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANGEQ, token.EQEQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison → term ( (>|>=|<|<=) term )*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GT, token.GTEQ, token.LT, token.LTEQ) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term → factor ( (-|+) factor )*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor → power ( (%|/|*) power )*
func (p *Parser) factor() ast.Expr {
	expr := p.power()
	for p.match(token.MODULUS, token.SLASH, token.STAR) {
		op := p.previous()
		right := p.power()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// power → unary ( '**' power )?  -- right-associative
func (p *Parser) power() ast.Expr {
	expr := p.unary()
	if p.match(token.POWER) {
		op := p.previous()
		right := p.power()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary → (!|-) unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call → primary ( '(' args? ')' | '.' IDENT )*
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Obj: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= 255 {
				p.error(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary → false|true|null|NUMBER|STRING|super '.' IDENT |this|self|IDENT|'(' expression ')'
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.NULL):
		return &ast.Literal{Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.THIS, token.SELF):
		return &ast.Self{Keyword: p.previous()}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LPAREN):
		inner := p.expression()
		p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: inner}
	case p.isBinaryOrTernaryStart():
		panic(p.error(p.peek(), "Binary/ternary operator found in a unary context"))
	default:
		panic(p.error(p.peek(), "Expect expression."))
	}
}

// isBinaryOrTernaryStart detects a binary/ternary operator appearing where
// a primary is expected, e.g. a stray leading `+ 2` or `? a : b`.
func (p *Parser) isBinaryOrTernaryStart() bool {
	switch p.peek().Kind {
	case token.PLUS, token.SLASH, token.STAR, token.MODULUS, token.POWER,
		token.BANGEQ, token.EQEQ, token.GT, token.GTEQ, token.LT, token.LTEQ,
		token.AND, token.OR, token.QUESTION:
		return true
	}
	return false
}
