package resolver

import (
	"testing"

	"github.com/lox-lang/lox-go/internal/lexer"
	"github.com/lox-lang/lox-go/internal/parser"
	"github.com/lox-lang/lox-go/pkg/ast"
)

func resolve(t *testing.T, src string) (*Resolver, []ast.Statement) {
	t.Helper()
	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	r := New()
	r.Resolve(stmts)
	return r, stmts
}

func TestResolveLocalDepth(t *testing.T) {
	r, stmts := resolve(t, `{ var a = 1; { print a; } }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	outerBlock := stmts[0].(*ast.Block)
	innerBlock := outerBlock.Stmts[1].(*ast.Block)
	printStmt := innerBlock.Stmts[0].(*ast.Print)
	ref := printStmt.Expr.(*ast.Variable)
	depth, ok := r.Locals()[ref.ID()]
	if !ok || depth != 1 {
		t.Fatalf("got depth=%d ok=%v, want depth=1", depth, ok)
	}
}

func TestResolveGlobalIsUnresolved(t *testing.T) {
	r, stmts := resolve(t, `var a = 1; print a;`)
	printStmt := stmts[1].(*ast.Print)
	ref := printStmt.Expr.(*ast.Variable)
	if _, ok := r.Locals()[ref.ID()]; ok {
		t.Fatalf("global reference should not be in locals map")
	}
}

func TestResolveReadDuringInitializerIsError(t *testing.T) {
	r, _ := resolve(t, `{ var a = a; }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveRedeclarationInSameScopeIsError(t *testing.T) {
	r, _ := resolve(t, `{ var a = 1; var a = 2; }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveRedeclarationAtGlobalIsAllowed(t *testing.T) {
	r, _ := resolve(t, `var a = 1; var a = 2;`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
}

func TestResolveReturnFromTopLevelIsError(t *testing.T) {
	r, _ := resolve(t, `return 1;`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveReturnValueInsideInitIsError(t *testing.T) {
	r, _ := resolve(t, `class Foo { init() { return 1; } }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveBareReturnInsideInitIsAllowed(t *testing.T) {
	r, _ := resolve(t, `class Foo { init() { return; } }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	r, _ := resolve(t, `print this;`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	r, _ := resolve(t, `class A { f() { super.f(); } }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}

func TestResolveClassSelfInheritanceIsError(t *testing.T) {
	r, _ := resolve(t, `class A : A {}`)
	if len(r.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(r.Errors()), r.Errors())
	}
}
