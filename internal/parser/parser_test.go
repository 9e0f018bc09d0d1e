package parser

import (
	"testing"

	"github.com/lox-lang/lox-go/internal/lexer"
	"github.com/lox-lang/lox-go/pkg/ast"
	"github.com/lox-lang/lox-go/pkg/printer"
)

func parse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if len(lx.Errors()) != 0 {
		t.Fatalf("lex errors: %v", lx.Errors())
	}
	p := New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	return stmts
}

func TestParsePrecedenceLadder(t *testing.T) {
	stmts := parse(t, `print 1 + 2 * 3 - 4 / 2 == 3 and true or false;`)
	got := printer.Stmt(stmts[0])
	want := `(print (or (and (== (- (+ 1 (* 2 3)) (/ 4 2)) 3) true) false))`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	stmts := parse(t, `var a; var b; a = b = 3;`)
	got := printer.Stmt(stmts[2])
	want := `(expr (= a (= b 3)))`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseInvalidAssignmentTargetIsNonPanic(t *testing.T) {
	lx := lexer.New(`1 = 2; print "still here";`)
	tokens := lx.ScanTokens()
	p := New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(p.Errors()), p.Errors())
	}
	if len(stmts) != 2 {
		t.Fatalf("parsing should continue past InvalidAssignment, got %d stmts", len(stmts))
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if len(stmts) != 1 {
		t.Fatalf("got %d top-level stmts, want 1", len(stmts))
	}
	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("got %T, want *ast.Block", stmts[0])
	}
	if _, ok := block.Stmts[1].(*ast.While); !ok {
		t.Fatalf("got %T, want *ast.While as second statement", block.Stmts[1])
	}
}

func TestParseForMissingConditionDefaultsTrue(t *testing.T) {
	stmts := parse(t, `for (;;) print 1;`)
	while, ok := stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *ast.While", stmts[0])
	}
	lit, ok := while.Cond.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Fatalf("got cond %#v, want literal true", while.Cond)
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts := parse(t, `class B : A { g(){ print "B.g"; } }`)
	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("got %T, want *ast.Class", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("got superclass %#v, want A", class.Superclass)
	}
}

func TestParseMaximumArguments(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ", "
		}
		args += "1"
	}
	lx := lexer.New(`f(` + args + `);`)
	tokens := lx.ScanTokens()
	p := New(tokens)
	p.ParseProgram()
	if len(p.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1 (MaximumArguments): %v", len(p.Errors()), p.Errors())
	}
}

func TestParseSuperMethodCall(t *testing.T) {
	stmts := parse(t, `class B : A { g(){ super.f(); } }`)
	class := stmts[0].(*ast.Class)
	exprStmt := class.Methods[0].Body[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	super, ok := call.Callee.(*ast.Super)
	if !ok || super.Method.Lexeme != "f" {
		t.Fatalf("got %#v", call.Callee)
	}
}
