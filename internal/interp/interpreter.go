// Package interp walks the resolved AST and evaluates it, owning the
// environment tree, the call stack, and the pending-return-signal
// state that runtime.Callable implementations reach back into through
// the runtime.Invoker interface.
package interp

import (
	"fmt"
	"io"
	"os"

	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/resolver"
	"github.com/lox-lang/lox-go/internal/runtime"
	"github.com/lox-lang/lox-go/pkg/ast"
)

// Interpreter evaluates a resolved program. It implements
// runtime.Invoker so that runtime.Callable.Invoke can execute function
// bodies without importing this package.
type Interpreter struct {
	env       *runtime.Environment
	locals    resolver.Locals
	callStack *runtime.CallStack
	out       io.Writer
	pending   *runtime.Value // set by Return, consumed by TakeReturnSignal
}

// New builds an Interpreter with a fresh global environment, native
// builtins installed, and the given resolver output and options.
func New(locals resolver.Locals, opts ...Option) *Interpreter {
	it := &Interpreter{
		env:       runtime.NewEnvironment(),
		locals:    locals,
		callStack: runtime.NewCallStack(runtime.DefaultMaxCallDepth),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(it)
	}
	installBuiltins(it.env)
	return it
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithWriter redirects print statements to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(it *Interpreter) { it.out = w }
}

// WithMaxCallDepth overrides the call-stack depth limit.
func WithMaxCallDepth(max int) Option {
	return func(it *Interpreter) { it.callStack = runtime.NewCallStack(max) }
}

// runtime.Invoker implementation.

func (it *Interpreter) Env() *runtime.Environment     { return it.env }
func (it *Interpreter) SetEnv(env *runtime.Environment) { it.env = env }
func (it *Interpreter) CallStack() *runtime.CallStack { return it.callStack }

func (it *Interpreter) TakeReturnSignal() (runtime.Value, bool) {
	if it.pending == nil {
		return nil, false
	}
	v := *it.pending
	it.pending = nil
	return v, true
}

func (it *Interpreter) ExecBlock(stmts []ast.Statement, env *runtime.Environment) error {
	prev := it.env
	it.env = env
	defer func() { it.env = prev }()
	for _, s := range stmts {
		if err := it.Exec(s); err != nil {
			return err
		}
		if it.pending != nil {
			return nil
		}
	}
	return nil
}

// Interpret runs a whole program: each top-level statement in order,
// stopping at the first RuntimeError, per spec.md §4.6 and §7.
func (it *Interpreter) Interpret(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := it.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes one statement.
func (it *Interpreter) Exec(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := it.Eval(n.Expr)
		return err
	case *ast.Print:
		v, err := it.Eval(n.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.out, runtime.Stringify(v))
		return nil
	case *ast.Var:
		var v runtime.Value
		if n.Init != nil {
			var err error
			v, err = it.Eval(n.Init)
			if err != nil {
				return err
			}
		}
		it.env.Define(n.Name.Lexeme, v)
		return nil
	case *ast.Block:
		return it.execBlockNewScope(n.Stmts)
	case *ast.If:
		cond, err := it.Eval(n.Cond)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(cond) {
			return it.Exec(n.Then)
		}
		if n.Else != nil {
			return it.Exec(n.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.Eval(n.Cond)
			if err != nil {
				return err
			}
			if !runtime.IsTruthy(cond) {
				return nil
			}
			if err := it.Exec(n.Body); err != nil {
				return err
			}
			if it.pending != nil {
				return nil
			}
		}
	case *ast.Function:
		fn := runtime.NewUserFunction(n, it.env.Current(), false)
		it.env.Define(n.Name.Lexeme, fn)
		return nil
	case *ast.Return:
		var v runtime.Value
		if n.Value != nil {
			var err error
			v, err = it.Eval(n.Value)
			if err != nil {
				return err
			}
		}
		it.pending = &v
		return nil
	case *ast.Class:
		return it.execClass(n)
	default:
		return fmt.Errorf("interp: unhandled statement %T", s)
	}
}

func (it *Interpreter) execBlockNewScope(stmts []ast.Statement) error {
	frame := it.env.Push()
	env := it.env.WithCurrent(frame)
	return it.ExecBlock(stmts, env)
}

func (it *Interpreter) execClass(n *ast.Class) error {
	var super *runtime.Class
	if n.Superclass != nil {
		v, err := it.Eval(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*runtime.Class)
		if !ok {
			return lerrors.New(lerrors.PhaseRuntime, lerrors.SuperclassMustBeClass,
				"Superclass must be a class.", n.Superclass.Pos().Start)
		}
		super = sc
	}

	it.env.Define(n.Name.Lexeme, nil)

	classEnv := it.env
	if super != nil {
		frame := it.env.Push()
		classEnv = it.env.WithCurrent(frame)
		classEnv.Define("super", super)
	}

	methods := make(map[string]*runtime.UserFunction, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = runtime.NewUserFunction(m, classEnv.Current(), m.Name.Lexeme == "init")
	}

	class := runtime.NewClass(n, super, methods)
	it.env.Define(n.Name.Lexeme, class)
	return nil
}
