package runtime

import (
	"testing"

	"github.com/lox-lang/lox-go/pkg/ast"
	"github.com/lox-lang/lox-go/pkg/token"
)

// fakeInvoker is a minimal runtime.Invoker whose ExecBlock only records
// the environment it was given and returns execErr; the return signal
// comes from whatever is pre-loaded into retValue/hasReturn. Enough to
// exercise UserFunction.Invoke's frame/return-signal plumbing without
// the full interp package.
type fakeInvoker struct {
	env        *Environment
	callStack  *CallStack
	retValue   Value
	hasReturn  bool
	execErr    error
	execEnv    *Environment
}

func (f *fakeInvoker) ExecBlock(_ []ast.Statement, env *Environment) error {
	f.execEnv = env
	return f.execErr
}
func (f *fakeInvoker) Env() *Environment                                { return f.env }
func (f *fakeInvoker) SetEnv(env *Environment)                          { f.env = env }
func (f *fakeInvoker) CallStack() *CallStack                            { return f.callStack }
func (f *fakeInvoker) TakeReturnSignal() (Value, bool) {
	if !f.hasReturn {
		return nil, false
	}
	f.hasReturn = false
	return f.retValue, true
}

func nameTok(lexeme string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: lexeme}
}

func TestUserFunctionInvokeBindsParamsAndReturns(t *testing.T) {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok("f"), []token.Token{nameTok("a")}, nil)
	fn := NewUserFunction(decl, nil, false)

	env := NewEnvironment()
	inv := &fakeInvoker{env: env, callStack: NewCallStack(0), retValue: "result", hasReturn: true}

	v, err := fn.Invoke(inv, []Value{1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "result" {
		t.Fatalf("got %v, want result", v)
	}
	if a, ok := inv.execEnv.GetAt("a", 0); !ok || a != 1.0 {
		t.Fatalf("parameter a should be bound to 1 in the body's frame, got %v ok=%v", a, ok)
	}
	if inv.Env() != env {
		t.Fatalf("environment was not restored after the call")
	}
}

func TestUserFunctionInvokeNoReturnYieldsNil(t *testing.T) {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok("f"), nil, nil)
	fn := NewUserFunction(decl, nil, false)
	inv := &fakeInvoker{env: NewEnvironment(), callStack: NewCallStack(0)}

	v, err := fn.Invoke(inv, nil)
	if err != nil || v != nil {
		t.Fatalf("got v=%v err=%v, want nil, nil", v, err)
	}
}

func TestUserFunctionInitializerReturnsThisRegardlessOfReturnValue(t *testing.T) {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok("init"), nil, nil)
	fn := NewUserFunction(decl, nil, true)

	class := NewClass(nil, nil, nil)
	instance := NewInstance(class)
	bound := fn.Bind(instance)

	inv := &fakeInvoker{env: NewEnvironment(), callStack: NewCallStack(0), retValue: 42.0, hasReturn: true}
	v, err := bound.Invoke(inv, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Value(instance) {
		t.Fatalf("initializer should return the instance, got %v", v)
	}
}

func TestUserFunctionInvokeStackOverflow(t *testing.T) {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok("f"), nil, nil)
	fn := NewUserFunction(decl, nil, false)
	cs := NewCallStack(1)
	cs.Enter() // simulate one already-active call

	inv := &fakeInvoker{env: NewEnvironment(), callStack: cs}
	_, err := fn.Invoke(inv, nil)
	if err == nil {
		t.Fatalf("expected a stack overflow error")
	}
}

func TestBindExtendsClosureWithThis(t *testing.T) {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok("m"), nil, nil)
	fn := NewUserFunction(decl, nil, false)
	class := NewClass(nil, nil, nil)
	instance := NewInstance(class)

	bound := fn.Bind(instance)
	this, ok := bound.Closure.values["this"]
	if !ok || this != Value(instance) {
		t.Fatalf("bound closure should bind this to the instance")
	}
}
