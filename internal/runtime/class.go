package runtime

import (
	"strconv"

	"github.com/lox-lang/lox-go/pkg/ast"
)

// Class is the runtime value produced by a class declaration: its own
// declaration, an optional superclass (nil at the root of a hierarchy),
// and its method table keyed by name, per spec.md §3 and §4.6.
type Class struct {
	Decl       *ast.Class
	Superclass *Class
	Methods    map[string]*UserFunction
}

func NewClass(decl *ast.Class, superclass *Class, methods map[string]*UserFunction) *Class {
	return &Class{Decl: decl, Superclass: superclass, Methods: methods}
}

func (c *Class) Name() string   { return c.Decl.Name.Lexeme }
func (c *Class) String() string { return "<class " + c.Decl.Name.Lexeme + ">" }

// Arity is the initializer's arity, or 0 if the class defines none,
// per spec.md §4.6 (class invocation observes init's arity).
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod looks up name in this class's own method table, then
// walks the superclass chain, implementing single-inheritance method
// resolution from spec.md §4.6.
func (c *Class) FindMethod(name string) *UserFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Invoke allocates a new Instance and, if the class defines "init",
// binds and calls it with the supplied arguments before returning the
// instance, per spec.md §4.6.
func (c *Class) Invoke(inv Invoker, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		bound := init.Bind(instance)
		if _, err := bound.Invoke(inv, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a monotonically assigned id, an
// immutable class reference, and a mutable field map, per spec.md §3.
type Instance struct {
	id     int
	Class  *Class
	Fields map[string]Value
}

var nextInstanceID int

// NewInstance allocates a new Instance with a fresh id and empty
// field map.
func NewInstance(class *Class) *Instance {
	nextInstanceID++
	return &Instance{id: nextInstanceID, Class: class, Fields: make(map[string]Value)}
}

// ID returns this instance's unique id.
func (i *Instance) ID() int { return i.id }

func (i *Instance) String() string {
	return "<" + i.Class.Name() + " instance, id " + strconv.Itoa(i.id) + ">"
}

// Get reads a field first, then a bound method, per spec.md §4.6's
// property-get order. The second return is false for
// RuntimeError-worthy "undefined property".
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m.Bind(i), true
	}
	return nil, false
}

// Set writes a field unconditionally; no prior declaration is
// required, per spec.md §4.6.
func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}
