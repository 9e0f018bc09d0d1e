package runtime

// Frame is one scope of the environment chain: a map of bindings plus
// an optional parent link. Frames are shared by reference: multiple
// closures may hold the same frame, and assignments made through any
// of them are visible to all, per spec.md §4.4 and §9.
type Frame struct {
	values map[string]Value
	parent *Frame
}

func newFrame(parent *Frame) *Frame {
	return &Frame{values: make(map[string]Value), parent: parent}
}

// Environment couples a possibly-nil current local chain pointer to a
// permanent global frame that is always present and never popped, per
// spec.md §3's Environment tree invariants.
type Environment struct {
	global  *Frame
	current *Frame // nil means "no local scope, use global"
}

// NewEnvironment builds a fresh environment with only the global
// frame, used at the start of every run (spec.md §6: "each run begins
// with a fresh global frame").
func NewEnvironment() *Environment {
	return &Environment{global: newFrame(nil)}
}

// Current returns the innermost local frame pointer, or nil if none is
// active. Function closures snapshot this pointer.
func (e *Environment) Current() *Frame {
	return e.current
}

// WithCurrent returns a copy of the Environment with its local chain
// pointer replaced by frame. This is how a closure's captured chain
// and the call's temporary chain are swapped in and out without
// mutating frames shared with other closures.
func (e *Environment) WithCurrent(frame *Frame) *Environment {
	return &Environment{global: e.global, current: frame}
}

// Push returns a new local frame enclosed by the current chain (or by
// nothing, if there is no current local scope yet), per spec.md
// §4.4's push() operation.
func (e *Environment) Push() *Frame {
	return newFrame(e.current)
}

// Define inserts name into the innermost local frame if one is
// active, else into the global frame. Redefinition replaces the prior
// value, per spec.md §4.4.
func (e *Environment) Define(name string, v Value) {
	if e.current != nil {
		e.current.values[name] = v
		return
	}
	e.global.values[name] = v
}

// GetAt reads name starting from the innermost local frame, walking
// depth parents, then reading directly from that frame's map. Used
// for resolver-annotated references; O(1) relative to scope size.
func (e *Environment) GetAt(name string, depth int) (Value, bool) {
	frame := e.ancestor(depth)
	if frame == nil {
		return nil, false
	}
	v, ok := frame.values[name]
	return v, ok
}

// GetGlobal reads name directly from the global frame.
func (e *Environment) GetGlobal(name string) (Value, bool) {
	v, ok := e.global.values[name]
	return v, ok
}

// AssignAt writes name at the frame depth parents up from the current
// chain. It returns false if that frame has no such binding yet
// (spec.md §4.4: "None if the target slot is missing").
func (e *Environment) AssignAt(name string, v Value, depth int) bool {
	frame := e.ancestor(depth)
	if frame == nil {
		return false
	}
	if _, ok := frame.values[name]; !ok {
		return false
	}
	frame.values[name] = v
	return true
}

// AssignGlobal writes name in the global frame, returning false if it
// is not already defined there.
func (e *Environment) AssignGlobal(name string, v Value) bool {
	if _, ok := e.global.values[name]; !ok {
		return false
	}
	e.global.values[name] = v
	return true
}

func (e *Environment) ancestor(depth int) *Frame {
	frame := e.current
	for i := 0; i < depth && frame != nil; i++ {
		frame = frame.parent
	}
	return frame
}
