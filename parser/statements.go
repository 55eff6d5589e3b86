package parser

import (
	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/token"
)

// declaration → classDecl | constDecl | funDecl | varDecl | statement
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.CONST):
		return p.constDecl()
	case p.checkFunDecl():
		p.advance()
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl(p.previous())
	case p.match(token.LET):
		return p.varDecl(p.previous())
	default:
		return p.statement()
	}
}

// checkFunDecl distinguishes `fun foo() {}` / `fn foo() {}` (a
// declaration) from a bare function-valued expression statement: the
// language has no anonymous function literal, so FUN/FN always begins a
// declaration at statement position.
func (p *Parser) checkFunDecl() bool {
	return p.check(token.FUN) || p.check(token.FN)
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LT, token.COLON) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		supName := p.previous()
		superclass = &ast.Variable{Name: supName}
	}

	p.consume(token.LBRACE, "Expect '{' before class body.")

	var methods []*ast.Method
	for !p.check(token.RBRACE) && !p.atEnd() {
		methods = append(methods, p.method())
	}
	p.consume(token.RBRACE, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) method() *ast.Method {
	name := p.consume(token.IDENTIFIER, "Expect method name.")
	params, body := p.functionTail(name.Lexeme)
	return &ast.Method{Name: name, Params: params, Body: body}
}

func (p *Parser) constDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect constant name.")
	p.consume(token.EQ, "Expect '=' after constant name (constants require an initializer).")
	init := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after constant declaration.")
	return &ast.Const{Name: name, Init: init}
}

func (p *Parser) varDecl(keyword token.Token) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	} else if keyword.Kind == token.LET {
		panic(p.error(p.peek(), "Expect '=' after 'let' variable name (let requires an initializer)."))
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Keyword: keyword, Init: init}
}

func (p *Parser) funDecl(kind string) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	params, body := p.functionTail(name.Lexeme)
	return &ast.Function{Name: name, Params: params, Body: body}
}

// functionTail parses "(params) { body }", shared by function
// declarations and methods.
func (p *Parser) functionTail(name string) ([]token.Token, []ast.Stmt) {
	p.consume(token.LPAREN, "Expect '(' after "+name+" name.")
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= 255 {
				p.error(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before "+name+" body.")
	body := p.block()
	return params, body
}

// statement → break | continue | echo | for | if | block | return | while | exprStmt
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.BREAK):
		return p.breakStmt()
	case p.match(token.CONTINUE):
		return p.continueStmt()
	case p.match(token.ECHO, token.PRINT):
		return p.echoStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.LBRACE):
		return &ast.Block{Stmts: p.block()}
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.error(keyword, "'break' may only appear inside a loop.")
	}
	p.consume(token.SEMICOLON, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) continueStmt() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.error(keyword, "'continue' may only appear inside a loop.")
	}
	p.consume(token.SEMICOLON, "Expect ';' after 'continue'.")
	return &ast.Continue{Keyword: keyword}
}

func (p *Parser) echoStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Echo{Value: value}
}

// forStmt desugars `for (init; cond; incr) body` per SPEC_FULL.md §4.2:
// an omitted cond becomes Literal(true); incr is appended as the last
// statement of body, wrapping body in a Block if it wasn't one already.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl(p.previous())
	case p.match(token.LET):
		init = p.varDecl(p.previous())
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if incr != nil {
		stmts := []ast.Stmt{body}
		if block, ok := body.(*ast.Block); ok {
			stmts = block.Stmts
		}
		stmts = append(stmts, &ast.Expression{Value: incr})
		body = &ast.Block{Stmts: stmts}
	}

	return &ast.For{Init: init, Cond: cond, Body: body, HasIncr: incr != nil}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) exprStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Value: value}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		if s := p.declarationRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return stmts
}
