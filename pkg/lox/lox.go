// Package lox is the embeddable façade over the scan/parse/resolve/run
// pipeline: the same shape cmd/lox drives, exposed as a library API
// for callers who want to run Lox source from Go, configured with
// functional options that mirror internal/interp's Option type.
package lox

import (
	"fmt"
	"io"
	"os"
	"strings"

	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/interp"
	"github.com/lox-lang/lox-go/internal/lexer"
	"github.com/lox-lang/lox-go/internal/parser"
	"github.com/lox-lang/lox-go/internal/resolver"
	"github.com/lox-lang/lox-go/internal/runtime"
	"github.com/lox-lang/lox-go/internal/source"
	"github.com/lox-lang/lox-go/pkg/ast"
)

// Options configures Run and NewREPL: where output goes and how deep the call
// stack is allowed to recurse before raising StackOverflow.
type Options struct {
	writer      io.Writer
	maxCallDepth int
}

// Option mutates an Options value.
type Option func(*Options)

// WithWriter redirects print statements away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.writer = w }
}

// WithMaxCallDepth overrides the default call-stack depth limit
// (runtime.DefaultMaxCallDepth).
func WithMaxCallDepth(max int) Option {
	return func(o *Options) { o.maxCallDepth = max }
}

func newOptions(opts ...Option) *Options {
	o := &Options{writer: os.Stdout, maxCallDepth: runtime.DefaultMaxCallDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ExitCode mirrors the original Lox tool's convention, reused by
// cmd/lox: 0 success, 65 a syntax/parse/resolve error, 70 a runtime
// error, matching spec.md's Non-goals note that exit-code convention
// is an implementation detail left to the embedder.
type ExitCode int

const (
	ExitOK      ExitCode = 0
	ExitDataErr ExitCode = 65
	ExitRuntime ExitCode = 70
)

// Result is the outcome of running one source unit.
type Result struct {
	Diagnostics []*lerrors.Diagnostic
	ExitCode    ExitCode
}

// Run scans, parses, resolves, and interprets src in one fresh
// environment, per spec.md §7's phase-gated pipeline: each phase runs
// only if the previous phase produced no diagnostics.
func Run(src string, opts ...Option) *Result {
	o := newOptions(opts...)

	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		return &Result{Diagnostics: errs, ExitCode: ExitDataErr}
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return &Result{Diagnostics: errs, ExitCode: ExitDataErr}
	}

	res := resolver.New()
	res.Resolve(stmts)
	if errs := res.Errors(); len(errs) > 0 {
		return &Result{Diagnostics: errs, ExitCode: ExitDataErr}
	}

	it := interp.New(res.Locals(), interp.WithWriter(o.writer), interp.WithMaxCallDepth(o.maxCallDepth))
	if err := it.Interpret(stmts); err != nil {
		d, ok := err.(*lerrors.Diagnostic)
		if !ok {
			d = lerrors.New(lerrors.PhaseRuntime, lerrors.UndefinedVariable, err.Error(), zeroPos())
		}
		return &Result{Diagnostics: []*lerrors.Diagnostic{d}, ExitCode: ExitRuntime}
	}

	return &Result{ExitCode: ExitOK}
}

func zeroPos() source.CharPos {
	return source.CharPos{}
}

// ParseAST runs only the scan+parse phases, returning the statement
// tree for tools like `lox parse` that print the AST rather than run
// it.
func ParseAST(src string) ([]ast.Statement, []*lerrors.Diagnostic) {
	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		return nil, errs
	}
	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs
	}
	return stmts, nil
}

// REPL holds interpreter state across successive lines of input, so
// that variable and function declarations from one line are visible
// to the next, per the supplemented interactive-mode feature.
type REPL struct {
	it       *interp.Interpreter
	resolver *resolver.Resolver
	writer   io.Writer
}

// NewREPL builds a REPL with a persistent global environment.
func NewREPL(opts ...Option) *REPL {
	o := newOptions(opts...)
	res := resolver.New()
	it := interp.New(res.Locals(), interp.WithWriter(o.writer), interp.WithMaxCallDepth(o.maxCallDepth))
	return &REPL{it: it, resolver: res, writer: o.writer}
}

// EvalLine runs one line of input. If the line parses as a bare
// expression it is echoed as a result, mirroring the original Lox
// REPL's auto-print convenience; statements run for effect only.
func (r *REPL) EvalLine(line string) []*lerrors.Diagnostic {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	src := line
	if !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "}") {
		src = line + ";"
	}

	lx := lexer.New(src)
	tokens := lx.ScanTokens()
	if errs := lx.Errors(); len(errs) > 0 {
		return errs
	}

	p := parser.New(tokens)
	stmts := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return errs
	}

	r.resolver.Resolve(stmts)
	if errs := r.resolver.Errors(); len(errs) > 0 {
		return errs
	}

	if len(stmts) == 1 {
		if exprStmt, ok := stmts[0].(*ast.ExprStmt); ok {
			v, err := r.it.Eval(exprStmt.Expr)
			if err != nil {
				return diagFromErr(err)
			}
			fmt.Fprintln(r.writer, runtime.Stringify(v))
			return nil
		}
	}

	if err := r.it.Interpret(stmts); err != nil {
		return diagFromErr(err)
	}
	return nil
}

func diagFromErr(err error) []*lerrors.Diagnostic {
	if d, ok := err.(*lerrors.Diagnostic); ok {
		return []*lerrors.Diagnostic{d}
	}
	return []*lerrors.Diagnostic{lerrors.New(lerrors.PhaseRuntime, lerrors.UndefinedVariable, err.Error(), zeroPos())}
}
