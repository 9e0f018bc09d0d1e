// Package ast defines the expression and statement node types
// produced by the parser: tagged interfaces exposing their source
// token through Pos, one type per grammar production.
//
// Every Expression is assigned a unique id at construction so the
// resolver's depth map (pkg/ast id -> binding depth) has a stable key
// that does not rely on structural equality, per spec.md §9.
package ast

import "github.com/lox-lang/lox-go/pkg/token"

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() token.Token
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	ID() int
	exprNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	stmtNode()
}

var nextExprID int

func newExprID() int {
	nextExprID++
	return nextExprID
}

// exprBase is embedded by every Expression variant to supply its
// identity and source token without repeating boilerplate.
type exprBase struct {
	id    int
	token token.Token
}

func newExprBase(tok token.Token) exprBase {
	return exprBase{id: newExprID(), token: tok}
}

func (b exprBase) ID() int           { return b.id }
func (b exprBase) Pos() token.Token  { return b.token }
func (exprBase) exprNode()           {}

// stmtBase is embedded by every Statement variant.
type stmtBase struct {
	token token.Token
}

func (b stmtBase) Pos() token.Token { return b.token }
func (stmtBase) stmtNode()          {}
