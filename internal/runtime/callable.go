package runtime

import "github.com/lox-lang/lox-go/pkg/ast"

// Callable is any Value that can be invoked: a user function, a
// native function, or a class acting as its own constructor, per
// spec.md §3. Invoke receives an Invoker rather than importing the
// interp package directly, which would create an import cycle between
// runtime (what gets called) and interp (what calls it).
type Callable interface {
	Value
	Name() string
	Arity() int
	Invoke(inv Invoker, args []Value) (Value, error)
}

// Invoker is the minimal surface the interp package exposes back down
// to runtime.Callable implementations so a function body can be
// executed without runtime importing interp.
type Invoker interface {
	ExecBlock(stmts []ast.Statement, env *Environment) error
	Env() *Environment
	SetEnv(env *Environment)
	CallStack() *CallStack
	TakeReturnSignal() (Value, bool)
}

// UserFunction is a function or method declared in Lox source. Its
// closure is the environment-tree local chain snapshotted when the
// Function statement executed, per spec.md §3.
type UserFunction struct {
	Decl          *ast.Function
	Closure       *Frame
	IsInitializer bool
}

func NewUserFunction(decl *ast.Function, closure *Frame, isInitializer bool) *UserFunction {
	return &UserFunction{Decl: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *UserFunction) Name() string { return f.Decl.Name.Lexeme }
func (f *UserFunction) Arity() int   { return len(f.Decl.Params) }
func (f *UserFunction) String() string {
	return "<fn " + f.Decl.Name.Lexeme + ">"
}

// Invoke binds parameters into a fresh frame enclosed by the
// function's closure, swaps the interpreter's environment to it for
// the duration of the body, and restores it on every exit path
// (normal completion, error, or a caught return signal), per spec.md
// §4.6 and §5.
func (f *UserFunction) Invoke(inv Invoker, args []Value) (Value, error) {
	if !inv.CallStack().Enter() {
		inv.CallStack().Exit()
		return nil, newStackOverflow()
	}
	defer inv.CallStack().Exit()

	callEnv := inv.Env().WithCurrent(f.Closure)
	frame := callEnv.Push()
	for i, param := range f.Decl.Params {
		frame.values[param.Lexeme] = args[i]
	}
	callEnv = callEnv.WithCurrent(frame)

	prev := inv.Env()
	inv.SetEnv(callEnv)
	defer inv.SetEnv(prev)
	err := inv.ExecBlock(f.Decl.Body, callEnv)

	if err != nil {
		return nil, err
	}

	if value, isReturn := inv.TakeReturnSignal(); isReturn {
		if f.IsInitializer {
			this, _ := callEnv.GetAt("this", 1)
			return this, nil
		}
		return value, nil
	}

	if f.IsInitializer {
		this, _ := callEnv.GetAt("this", 1)
		return this, nil
	}
	return nil, nil
}

// Bind produces a fresh UserFunction whose closure is extended by one
// frame binding "this" to the receiver, per spec.md §4.6: "Every
// fetch produces a fresh bound function."
func (f *UserFunction) Bind(this *Instance) *UserFunction {
	frame := newFrame(f.Closure)
	frame.values["this"] = this
	return &UserFunction{Decl: f.Decl, Closure: frame, IsInitializer: f.IsInitializer}
}

// NativeFunc is the Go implementation behind a NativeFunction value.
type NativeFunc func(inv Invoker, args []Value) (Value, error)

// NativeFunction wraps a host Go function as a callable, such as
// clock() from spec.md §6.
type NativeFunction struct {
	FnName string
	Args   int
	Fn     NativeFunc
}

func NewNativeFunction(name string, arity int, fn NativeFunc) *NativeFunction {
	return &NativeFunction{FnName: name, Args: arity, Fn: fn}
}

func (n *NativeFunction) Name() string   { return n.FnName }
func (n *NativeFunction) Arity() int     { return n.Args }
func (n *NativeFunction) String() string { return "<native fn " + n.FnName + ">" }
func (n *NativeFunction) Invoke(inv Invoker, args []Value) (Value, error) {
	return n.Fn(inv, args)
}
