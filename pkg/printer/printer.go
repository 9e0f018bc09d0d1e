// Package printer renders a statement tree back into a canonical
// S-expression form, one canonical shape per node, used by the "lox
// parse" debug command and by the parser tests to compare tree shapes.
// Nothing in this module parses the S-expression form back into a tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox-lang/lox-go/pkg/ast"
)

// Expr renders a single expression as a parenthesized S-expression.
func Expr(e ast.Expression) string {
	if e == nil {
		return "nil"
	}
	switch n := e.(type) {
	case *ast.Literal:
		return literal(n.Value)
	case *ast.Grouping:
		return paren("group", Expr(n.Expr))
	case *ast.Unary:
		return paren(n.Operator.Lexeme, Expr(n.Right))
	case *ast.Binary:
		return paren(n.Operator.Lexeme, Expr(n.Left), Expr(n.Right))
	case *ast.Logical:
		return paren(n.Operator.Lexeme, Expr(n.Left), Expr(n.Right))
	case *ast.Variable:
		return n.Name.Lexeme
	case *ast.Assign:
		return paren("=", n.Name.Lexeme, Expr(n.Value))
	case *ast.Call:
		args := make([]string, 0, len(n.Args)+1)
		args = append(args, Expr(n.Callee))
		for _, a := range n.Args {
			args = append(args, Expr(a))
		}
		return paren("call", args...)
	case *ast.Get:
		return paren(".", Expr(n.Object), n.Name.Lexeme)
	case *ast.Set:
		return paren("set", Expr(n.Object), n.Name.Lexeme, Expr(n.Value))
	case *ast.This:
		return "this"
	case *ast.Super:
		return paren("super", n.Method.Lexeme)
	default:
		return fmt.Sprintf("<unknown-expr %T>", e)
	}
}

func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func paren(op string, parts ...string) string {
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}

// Stmt renders a single statement.
func Stmt(s ast.Statement) string {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return paren("expr", Expr(n.Expr))
	case *ast.Print:
		return paren("print", Expr(n.Expr))
	case *ast.Var:
		if n.Init == nil {
			return paren("var", n.Name.Lexeme)
		}
		return paren("var", n.Name.Lexeme, Expr(n.Init))
	case *ast.Block:
		parts := make([]string, 0, len(n.Stmts))
		for _, st := range n.Stmts {
			parts = append(parts, Stmt(st))
		}
		return paren("block", parts...)
	case *ast.If:
		if n.Else == nil {
			return paren("if", Expr(n.Cond), Stmt(n.Then))
		}
		return paren("if", Expr(n.Cond), Stmt(n.Then), Stmt(n.Else))
	case *ast.While:
		return paren("while", Expr(n.Cond), Stmt(n.Body))
	case *ast.Function:
		params := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.Lexeme)
		}
		body := make([]string, 0, len(n.Body))
		for _, st := range n.Body {
			body = append(body, Stmt(st))
		}
		parts := append([]string{n.Name.Lexeme, paren("params", params...)}, body...)
		return paren("fun", parts...)
	case *ast.Return:
		if n.Value == nil {
			return "(return)"
		}
		return paren("return", Expr(n.Value))
	case *ast.Class:
		parts := []string{n.Name.Lexeme}
		if n.Superclass != nil {
			parts = append(parts, paren("super", n.Superclass.Name.Lexeme))
		}
		for _, m := range n.Methods {
			parts = append(parts, Stmt(m))
		}
		return paren("class", parts...)
	default:
		return fmt.Sprintf("<unknown-stmt %T>", s)
	}
}

// Program renders a full statement list, one S-expression per line.
func Program(stmts []ast.Statement) string {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		lines = append(lines, Stmt(s))
	}
	return strings.Join(lines, "\n")
}
