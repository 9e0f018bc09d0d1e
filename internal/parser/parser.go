// Package parser implements a recursive-descent parser: tokens in, a
// statement tree out, panic-mode recovery on error, and desugaring of
// "for" into "while" at parse time.
package parser

import (
	"strconv"

	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/source"
	"github.com/lox-lang/lox-go/pkg/ast"
	"github.com/lox-lang/lox-go/pkg/token"
)

const maxArgs = 255

// Parser consumes a token slice and produces statements. It keeps
// exactly one token of lookahead via a cursor index into the token
// slice.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*lerrors.Diagnostic
}

// New constructs a Parser over an already-scanned token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse diagnostic collected while parsing.
func (p *Parser) Errors() []*lerrors.Diagnostic {
	return p.errors
}

// ParseProgram parses the entire token stream into a statement list.
// It never panics out to the caller: each top-level declaration that
// errors is resynchronized via panic-mode recovery and parsing
// continues, so one run can surface multiple diagnostics.
func (p *Parser) ParseProgram() []ast.Statement {
	var stmts []ast.Statement
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// --- cursor primitives ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// parseError is a panic value used only to unwind the current
// declaration/statement back to synchronize(); it never escapes
// ParseProgram.
type parseError struct{}

func (p *Parser) errorAt(kind lerrors.Kind, at source.CharPos, msg string) {
	p.errors = append(p.errors, lerrors.New(lerrors.PhaseParse, kind, msg, at))
}

// consume requires the next token to have the given kind, reporting
// "Expected '...'" on the *current* (not-yet-consumed) token's
// position when it does not, per spec.md §4.2, then enters panic mode.
func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(lerrors.UnexpectedToken, p.peek().Start, msg)
	panic(parseError{})
}

// synchronize discards tokens until a likely statement boundary: a
// consumed semicolon, or a token that begins a new
// declaration/statement, per spec.md §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// recoverable runs fn and, if it panics with a parseError, synchronizes
// and returns nil instead of propagating.
func (p *Parser) recoverable(fn func() ast.Statement) (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return fn()
}

// --- declarations ---

func (p *Parser) declaration() ast.Statement {
	return p.recoverable(func() ast.Statement {
		switch {
		case p.match(token.CLASS):
			return p.classDeclaration()
		case p.match(token.FUN):
			return p.function("function")
		case p.match(token.VAR):
			return p.varDeclaration()
		default:
			return p.statement()
		}
	})
}

func (p *Parser) classDeclaration() ast.Statement {
	tok := p.previous()
	name := p.consume(token.IDENTIFIER, "Expected class name.")

	var superclass *ast.Variable
	if p.match(token.COLON) {
		p.consume(token.IDENTIFIER, "Expected superclass name.")
		superclass = ast.NewVariable(p.previous())
	}

	p.consume(token.LEFT_BRACE, "Expected '{' before class body.")
	var methods []*ast.Function
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expected '}' after class body.")

	return ast.NewClass(tok, name, superclass, methods)
}

func (p *Parser) function(kind string) *ast.Function {
	tok := p.peek()
	name := p.consume(token.IDENTIFIER, "Expected "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expected '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(lerrors.MaximumArguments, p.peek().Start, "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expected parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expected ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expected '{' before "+kind+" body.")
	body := p.block()

	return ast.NewFunction(tok, name, params, body)
}

func (p *Parser) varDeclaration() ast.Statement {
	tok := p.previous()
	name := p.consume(token.IDENTIFIER, "Expected variable name.")

	var init ast.Expression
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after variable declaration.")
	return ast.NewVar(tok, name, init)
}

// --- statements ---

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		tok := p.previous()
		return ast.NewBlock(tok, p.block())
	default:
		return p.exprStatement()
	}
}

func (p *Parser) block() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expected '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() ast.Statement {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "Expected '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expected ')' after if condition.")

	then := p.statement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return ast.NewIf(tok, cond, then, els)
}

func (p *Parser) whileStatement() ast.Statement {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "Expected '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expected ')' after while condition.")
	body := p.statement()
	return ast.NewWhile(tok, cond, body)
}

// forStatement desugars "for (init; cond; incr) body" into the
// equivalent "while" form at parse time, per spec.md §4.2: a missing
// condition becomes literal true, and a present increment is appended
// to the end of the loop body inside a wrapping block.
func (p *Parser) forStatement() ast.Statement {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "Expected '(' after 'for'.")

	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.exprStatement()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after loop condition.")

	var incr ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expected ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = ast.NewBlock(tok, []ast.Statement{body, ast.NewExprStmt(tok, incr)})
	}
	if cond == nil {
		cond = ast.NewLiteral(tok, true)
	}
	body = ast.NewWhile(tok, cond, body)

	if init != nil {
		body = ast.NewBlock(tok, []ast.Statement{init, body})
	}
	return body
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after return value.")
	return ast.NewReturn(keyword, value)
}

func (p *Parser) printStatement() ast.Statement {
	tok := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expected ';' after value.")
	return ast.NewPrint(tok, value)
}

func (p *Parser) exprStatement() ast.Statement {
	tok := p.peek()
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expected ';' after expression.")
	return ast.NewExprStmt(tok, expr)
}

// --- expressions: lowest to highest precedence is assignment, or,
// and, equality, comparison, term, factor, unary, call, primary ---

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return ast.NewAssign(target.Name, value)
		case *ast.Get:
			return ast.NewSet(target.Object, target.Name, value)
		default:
			// Non-panic: reported but parsing continues normally,
			// per spec.md §4.2.
			p.errorAt(lerrors.InvalidAssignment, equals.Start, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *Parser) or() ast.Expression {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(op, right)
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expected property name after '.'.")
			expr = ast.NewGet(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(lerrors.MaximumArguments, p.peek().Start, "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expected ')' after arguments.")
	return ast.NewCall(callee, paren, args)
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteral(p.previous(), false)
	case p.match(token.TRUE):
		return ast.NewLiteral(p.previous(), true)
	case p.match(token.NIL):
		return ast.NewLiteral(p.previous(), nil)
	case p.match(token.NUMBER):
		tok := p.previous()
		return ast.NewLiteral(tok, parseNumber(tok.Lexeme))
	case p.match(token.STRING):
		tok := p.previous()
		return ast.NewLiteral(tok, stringValue(tok.Lexeme))
	case p.match(token.THIS):
		return ast.NewThis(p.previous())
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expected '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expected superclass method name.")
		return ast.NewSuper(keyword, method)
	case p.match(token.IDENTIFIER):
		return ast.NewVariable(p.previous())
	case p.match(token.LEFT_PAREN):
		paren := p.previous()
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expected ')' after expression.")
		return ast.NewGrouping(paren, expr)
	}

	p.errorAt(lerrors.ExpectedExpression, p.peek().Start, "Expected expression.")
	panic(parseError{})
}

func parseNumber(lexeme string) float64 {
	v, _ := strconv.ParseFloat(lexeme, 64)
	return v
}

// stringValue strips the surrounding quotes the lexer kept in the raw
// lexeme; string literals carry no escape sequences, per spec.md §4.1.
func stringValue(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return ""
}
