package runtime

import (
	"testing"

	"github.com/lox-lang/lox-go/pkg/ast"
	"github.com/lox-lang/lox-go/pkg/token"
)

func method(name string) *UserFunction {
	decl := ast.NewFunction(token.Token{Kind: token.FUN}, nameTok(name), nil, nil)
	return NewUserFunction(decl, nil, name == "init")
}

func TestClassFindMethodOwnTable(t *testing.T) {
	c := NewClass(&ast.Class{}, nil, map[string]*UserFunction{"f": method("f")})
	if m := c.FindMethod("f"); m == nil {
		t.Fatalf("expected to find own method f")
	}
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := NewClass(&ast.Class{}, nil, map[string]*UserFunction{"f": method("f")})
	derived := NewClass(&ast.Class{}, base, map[string]*UserFunction{"g": method("g")})

	if m := derived.FindMethod("f"); m == nil {
		t.Fatalf("expected inherited method f to resolve through superclass")
	}
	if m := derived.FindMethod("g"); m == nil {
		t.Fatalf("expected own method g")
	}
}

func TestClassOverrideShadowsSuperclass(t *testing.T) {
	superF := method("f")
	base := NewClass(&ast.Class{}, nil, map[string]*UserFunction{"f": superF})
	ownF := method("f")
	derived := NewClass(&ast.Class{}, base, map[string]*UserFunction{"f": ownF})

	if m := derived.FindMethod("f"); m != ownF {
		t.Fatalf("override should shadow the superclass method")
	}
}

func TestInstanceFieldsTakePriorityOverMethods(t *testing.T) {
	c := NewClass(&ast.Class{}, nil, map[string]*UserFunction{"name": method("name")})
	inst := NewInstance(c)
	inst.Set("name", "a field, not a method")

	v, ok := inst.Get("name")
	if !ok || v != "a field, not a method" {
		t.Fatalf("got v=%v ok=%v", v, ok)
	}
}

func TestInstanceGetMethodReturnsBoundFunction(t *testing.T) {
	c := NewClass(&ast.Class{}, nil, map[string]*UserFunction{"f": method("f")})
	inst := NewInstance(c)

	v, ok := inst.Get("f")
	if !ok {
		t.Fatalf("expected to find method f")
	}
	bound, ok := v.(*UserFunction)
	if !ok {
		t.Fatalf("got %T, want *UserFunction", v)
	}
	if this, _ := bound.Closure.values["this"]; this != Value(inst) {
		t.Fatalf("bound method should close over the receiver instance")
	}
}

func TestInstanceGetUndefinedPropertyFails(t *testing.T) {
	c := NewClass(&ast.Class{}, nil, nil)
	inst := NewInstance(c)
	if _, ok := inst.Get("missing"); ok {
		t.Fatalf("expected undefined property lookup to fail")
	}
}

func TestInstancesHaveUniqueIDs(t *testing.T) {
	c := NewClass(&ast.Class{}, nil, nil)
	a := NewInstance(c)
	b := NewInstance(c)
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct instance ids, got %d and %d", a.ID(), b.ID())
	}
}
