package runtime

import "testing"

func TestEnvironmentGlobalDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", 1.0)
	v, ok := env.GetGlobal("x")
	if !ok || v != 1.0 {
		t.Fatalf("got v=%v ok=%v", v, ok)
	}
}

func TestEnvironmentLocalShadowsGlobal(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", "global")
	frame := env.Push()
	local := env.WithCurrent(frame)
	local.Define("x", "local")

	v, ok := local.GetAt("x", 0)
	if !ok || v != "local" {
		t.Fatalf("got v=%v ok=%v", v, ok)
	}
	gv, ok := env.GetGlobal("x")
	if !ok || gv != "global" {
		t.Fatalf("global should be untouched, got v=%v ok=%v", gv, ok)
	}
}

func TestEnvironmentAssignAtSharedFrame(t *testing.T) {
	env := NewEnvironment()
	frame := env.Push()
	local := env.WithCurrent(frame)
	local.Define("i", 0.0)

	// Two separate Environment values sharing the same frame pointer,
	// as a closure and its call site do.
	other := &Environment{global: env.global, current: frame}
	if !other.AssignAt("i", 1.0, 0) {
		t.Fatalf("AssignAt should succeed against a shared frame")
	}
	v, _ := local.GetAt("i", 0)
	if v != 1.0 {
		t.Fatalf("shared frame mutation not visible, got %v", v)
	}
}

func TestEnvironmentAssignAtMissingSlotFails(t *testing.T) {
	env := NewEnvironment()
	frame := env.Push()
	local := env.WithCurrent(frame)
	if local.AssignAt("never_defined", 1.0, 0) {
		t.Fatalf("AssignAt should fail for an undefined slot")
	}
}

func TestEnvironmentAncestorWalksParentChain(t *testing.T) {
	env := NewEnvironment()
	outer := env.Push()
	outerEnv := env.WithCurrent(outer)
	outerEnv.Define("depth", "outer")

	inner := outerEnv.Push()
	innerEnv := outerEnv.WithCurrent(inner)
	innerEnv.Define("depth", "inner")

	v0, _ := innerEnv.GetAt("depth", 0)
	v1, _ := innerEnv.GetAt("depth", 1)
	if v0 != "inner" || v1 != "outer" {
		t.Fatalf("got v0=%v v1=%v", v0, v1)
	}
}
