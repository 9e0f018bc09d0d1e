package ast

import "github.com/lox-lang/lox-go/pkg/token"

// Literal wraps a scanned constant: a number, string, boolean, or nil.
// The parser stores the decoded Go value directly rather than
// re-parsing the lexeme at evaluation time.
type Literal struct {
	exprBase
	Value any // nil, bool, float64, or string
}

func NewLiteral(tok token.Token, value any) *Literal {
	return &Literal{exprBase: newExprBase(tok), Value: value}
}

// Unary is a prefix operator expression: "-x" or "!x".
type Unary struct {
	exprBase
	Operator token.Token
	Right    Expression
}

func NewUnary(operator token.Token, right Expression) *Unary {
	return &Unary{exprBase: newExprBase(operator), Operator: operator, Right: right}
}

// Binary is an infix arithmetic or comparison expression.
type Binary struct {
	exprBase
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{exprBase: newExprBase(operator), Left: left, Operator: operator, Right: right}
}

// Logical is "and"/"or", kept distinct from Binary because both
// operators short-circuit (spec.md §4.6).
type Logical struct {
	exprBase
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewLogical(left Expression, operator token.Token, right Expression) *Logical {
	return &Logical{exprBase: newExprBase(operator), Left: left, Operator: operator, Right: right}
}

// Grouping is a parenthesized expression, kept as its own node so the
// canonical printer (pkg/printer) can round-trip parentheses.
type Grouping struct {
	exprBase
	Expr Expression
}

func NewGrouping(paren token.Token, expr Expression) *Grouping {
	return &Grouping{exprBase: newExprBase(paren), Expr: expr}
}

// Variable is a reference to a named binding.
type Variable struct {
	exprBase
	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{exprBase: newExprBase(name), Name: name}
}

// Assign is "name = value".
type Assign struct {
	exprBase
	Name  token.Token
	Value Expression
}

func NewAssign(name token.Token, value Expression) *Assign {
	return &Assign{exprBase: newExprBase(name), Name: name, Value: value}
}

// Call is a function/method invocation: "callee(args...)". Paren is
// the closing ')' token, used to position runtime errors raised
// during the call (spec.md §4.2).
type Call struct {
	exprBase
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func NewCall(callee Expression, paren token.Token, args []Expression) *Call {
	return &Call{exprBase: newExprBase(paren), Callee: callee, Paren: paren, Args: args}
}

// Get is a property read: "obj.name".
type Get struct {
	exprBase
	Object Expression
	Name   token.Token
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{exprBase: newExprBase(name), Object: object, Name: name}
}

// Set is a property write: "obj.name = value".
type Set struct {
	exprBase
	Object Expression
	Name   token.Token
	Value  Expression
}

func NewSet(object Expression, name token.Token, value Expression) *Set {
	return &Set{exprBase: newExprBase(name), Object: object, Name: name, Value: value}
}

// This is a "this" reference inside a method body.
type This struct {
	exprBase
	Keyword token.Token
}

func NewThis(keyword token.Token) *This {
	return &This{exprBase: newExprBase(keyword), Keyword: keyword}
}

// Super is a "super.method" reference inside a subclass method.
type Super struct {
	exprBase
	Keyword token.Token
	Method  token.Token
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{exprBase: newExprBase(keyword), Keyword: keyword, Method: method}
}
