// Package resolver implements a static binding-depth pass: a stack of
// lexical scopes that, for each variable reference, computes how many
// enclosing scopes separate it from its declaration, recorded so the
// interpreter can bypass dynamic lookup.
package resolver

import (
	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/pkg/ast"
)

// Locals is the id -> depth map the interpreter consults at variable
// lookup time. Depth 0 means the innermost enclosing scope.
type Locals map[int]int

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// Resolver walks a statement tree once, declaring and resolving every
// name. It reports errors but never mutates the AST.
type Resolver struct {
	scopes     []map[string]bool
	locals     Locals
	errors     []*lerrors.Diagnostic
	currentFn  functionKind
	currentCls classKind
}

// New constructs a Resolver. The global scope is not represented on
// the scope stack; it is handled dynamically by the interpreter, per
// spec.md §4.3.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Errors returns every resolve diagnostic collected.
func (r *Resolver) Errors() []*lerrors.Diagnostic {
	return r.errors
}

// Locals returns the id -> depth map built during Resolve.
func (r *Resolver) Locals() Locals {
	return r.locals
}

// Resolve walks an entire program's statement list.
func (r *Resolver) Resolve(stmts []ast.Statement) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Statement) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.VarAlreadyExistInScope,
			"Variable with name '"+name.Lexeme+"' already declared in this scope.", name.Start))
		return
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks outward from the innermost scope; the first
// scope containing name yields its depth. Unresolved names are left
// untouched in Locals and fall through to the global frame at
// runtime, per spec.md §4.3.
func (r *Resolver) resolveLocal(exprID int, name ast.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name)
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		r.define(n.Name)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, inFunction)
	case *ast.ExprStmt:
		r.resolveExpr(n.Expr)
	case *ast.If:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.Print:
		r.resolveExpr(n.Expr)
	case *ast.Return:
		if r.currentFn == noFunction {
			r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.ReturnFromTopLevel,
				"Can't return from top-level code.", n.Keyword.Start))
		}
		if n.Value != nil {
			if r.currentFn == inInitializer {
				if lit, ok := n.Value.(*ast.Literal); !ok || lit.Value != nil {
					r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.ReturnInsideInit,
						"Can't return a value from an initializer.", n.Keyword.Start))
				}
			}
			r.resolveExpr(n.Value)
		}
	case *ast.While:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
	case *ast.Class:
		r.resolveClass(n)
	}
}

func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentCls
	r.currentCls = inClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.VarAlreadyExistInScope,
				"A class can't inherit from itself.", n.Superclass.Name.Start))
		} else {
			r.currentCls = inSubclass
			r.resolveExpr(n.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range n.Methods {
		kind := inMethod
		if method.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if n.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFn := r.currentFn
	r.currentFn = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveExpr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.ReadDuringInitializer,
					"Can't read local variable in its own initializer.", n.Name.Start))
			}
		}
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Grouping:
		r.resolveExpr(n.Expr)
	case *ast.Literal:
		// no bindings
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		if r.currentCls == noClass {
			r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.CallThisOutsideClass,
				"Can't use 'this' outside of a class.", n.Keyword.Start))
			return
		}
		r.resolveLocal(n.ID(), n.Keyword)
	case *ast.Super:
		if r.currentCls == noClass {
			r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.CallThisOutsideClass,
				"Can't use 'super' outside of a class.", n.Keyword.Start))
		} else if r.currentCls != inSubclass {
			r.errors = append(r.errors, lerrors.New(lerrors.PhaseResolve, lerrors.CallThisOutsideClass,
				"Can't use 'super' in a class with no superclass.", n.Keyword.Start))
		}
		r.resolveLocal(n.ID(), n.Keyword)
	}
}
