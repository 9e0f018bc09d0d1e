package interp

import (
	"strconv"

	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/runtime"
	"github.com/lox-lang/lox-go/internal/source"
	"github.com/lox-lang/lox-go/pkg/ast"
	"github.com/lox-lang/lox-go/pkg/token"
)

// Eval evaluates one expression to a runtime.Value.
func (it *Interpreter) Eval(e ast.Expression) (runtime.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return it.Eval(n.Expr)
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Logical:
		return it.evalLogical(n)
	case *ast.Variable:
		return it.lookupVariable(n.Name, n.ID())
	case *ast.Assign:
		return it.evalAssign(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Get:
		return it.evalGet(n)
	case *ast.Set:
		return it.evalSet(n)
	case *ast.This:
		return it.lookupVariable(n.Keyword, n.ID())
	case *ast.Super:
		return it.evalSuper(n)
	default:
		return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.UndefinedVariable, "unhandled expression", n.Pos().Start)
	}
}

func (it *Interpreter) lookupVariable(name token.Token, exprID int) (runtime.Value, error) {
	if depth, ok := it.locals[exprID]; ok {
		if v, ok := it.env.GetAt(name.Lexeme, depth); ok {
			return v, nil
		}
	} else if v, ok := it.env.GetGlobal(name.Lexeme); ok {
		return v, nil
	}
	return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.UndefinedVariable,
		"Undefined variable '"+name.Lexeme+"'.", name.Start, name.End)
}

func (it *Interpreter) evalAssign(n *ast.Assign) (runtime.Value, error) {
	v, err := it.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := it.locals[n.ID()]; ok {
		if it.env.AssignAt(n.Name.Lexeme, v, depth) {
			return v, nil
		}
	} else if it.env.AssignGlobal(n.Name.Lexeme, v) {
		return v, nil
	}
	return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.UndefinedVariable,
		"Undefined variable '"+n.Name.Lexeme+"'.", n.Name.Start, n.Name.End)
}

func (it *Interpreter) evalLogical(n *ast.Logical) (runtime.Value, error) {
	left, err := it.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.OR {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	}
	return it.Eval(n.Right)
}

func (it *Interpreter) evalUnary(n *ast.Unary) (runtime.Value, error) {
	right, err := it.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.Negation,
				"Operand must be a number.", n.Operator.Start)
		}
		return -num, nil
	case token.BANG:
		return !runtime.IsTruthy(right), nil
	}
	return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.Negation, "Unknown unary operator.", n.Operator.Start)
}

func (it *Interpreter) evalBinary(n *ast.Binary) (runtime.Value, error) {
	left, err := it.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.PLUS:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.Addition,
			"Operands must be two numbers or two strings.", n.Operator.Start)
	case token.MINUS:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Subtraction)
		if err != nil {
			return nil, err
		}
		return lf - rf, nil
	case token.STAR:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Multiplication)
		if err != nil {
			return nil, err
		}
		return lf * rf, nil
	case token.SLASH:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Division)
		if err != nil {
			return nil, err
		}
		if rf == 0 {
			return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.ZeroDivision,
				"Division by zero.", n.Operator.Start)
		}
		return lf / rf, nil
	case token.GREATER:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Comparison)
		if err != nil {
			return nil, err
		}
		return lf > rf, nil
	case token.GREATER_EQUAL:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Comparison)
		if err != nil {
			return nil, err
		}
		return lf >= rf, nil
	case token.LESS:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Comparison)
		if err != nil {
			return nil, err
		}
		return lf < rf, nil
	case token.LESS_EQUAL:
		lf, rf, err := numberOperands(left, right, n.Operator, lerrors.Comparison)
		if err != nil {
			return nil, err
		}
		return lf <= rf, nil
	case token.EQUAL_EQUAL:
		return runtime.Equal(left, right), nil
	case token.BANG_EQUAL:
		return !runtime.Equal(left, right), nil
	}
	return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.Comparison, "Unknown binary operator.", n.Operator.Start)
}

func numberOperands(left, right runtime.Value, op token.Token, kind lerrors.Kind) (float64, float64, error) {
	lf, ok := left.(float64)
	if !ok {
		return 0, 0, lerrors.New(lerrors.PhaseRuntime, kind, "Operands must be numbers.", op.Start)
	}
	rf, ok := right.(float64)
	if !ok {
		return 0, 0, lerrors.New(lerrors.PhaseRuntime, kind, "Operands must be numbers.", op.Start)
	}
	return lf, rf, nil
}

func (it *Interpreter) evalCall(n *ast.Call) (runtime.Value, error) {
	callee, err := it.Eval(n.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := it.Eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.ObjectNotCallable,
			"Can only call functions and classes.", n.Paren.Start)
	}
	if len(args) != fn.Arity() {
		return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.NumberArgumentsMismatch,
			"Expected "+strconv.Itoa(fn.Arity())+" arguments but got "+strconv.Itoa(len(args))+".", n.Paren.Start)
	}

	v, err := fn.Invoke(it, args)
	if err != nil {
		if d, ok := err.(*lerrors.Diagnostic); ok && d.Kind == lerrors.StackOverflow && d.Start == (source.CharPos{}) {
			return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.StackOverflow, d.Message, n.Paren.Start)
		}
		return nil, err
	}
	return v, nil
}

func (it *Interpreter) evalGet(n *ast.Get) (runtime.Value, error) {
	obj, err := it.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.OnlyInstancesHaveFields,
			"Only instances have properties.", n.Name.Start, n.Name.End)
	}
	v, ok := inst.Get(n.Name.Lexeme)
	if !ok {
		return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.UndefinedProperty,
			"Undefined property '"+n.Name.Lexeme+"'.", n.Name.Start, n.Name.End)
	}
	return v, nil
}

func (it *Interpreter) evalSet(n *ast.Set) (runtime.Value, error) {
	obj, err := it.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.Instance)
	if !ok {
		return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.OnlyInstancesHaveFields,
			"Only instances have fields.", n.Name.Start, n.Name.End)
	}
	v, err := it.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(n.Name.Lexeme, v)
	return v, nil
}

func (it *Interpreter) evalSuper(n *ast.Super) (runtime.Value, error) {
	depth := it.locals[n.ID()]
	superVal, _ := it.env.GetAt("super", depth)
	super, _ := superVal.(*runtime.Class)

	thisVal, _ := it.env.GetAt("this", depth-1)
	this, _ := thisVal.(*runtime.Instance)

	if super == nil {
		return nil, lerrors.New(lerrors.PhaseRuntime, lerrors.UndefinedProperty,
			"Undefined superclass.", n.Keyword.Start)
	}
	method := super.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, lerrors.NewSpan(lerrors.PhaseRuntime, lerrors.UndefinedProperty,
			"Undefined property '"+n.Method.Lexeme+"'.", n.Method.Start, n.Method.End)
	}
	return method.Bind(this), nil
}
