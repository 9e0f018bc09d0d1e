package runtime

// CallStack bounds function-call recursion depth. A tree-walking Go
// interpreter needs an explicit guard here because blowing the
// goroutine stack is not a recoverable RuntimeError the way running
// out of a bounded call stack is.
type CallStack struct {
	depth    int
	maxDepth int
}

// DefaultMaxCallDepth is the call-stack limit used when no override is
// configured.
const DefaultMaxCallDepth = 1024

// NewCallStack builds a CallStack with the given maximum depth; zero
// or negative selects DefaultMaxCallDepth.
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &CallStack{maxDepth: maxDepth}
}

// Enter increments the depth, reporting whether the call is within the
// configured limit. Callers must still call Exit on every path,
// including error returns, to keep the counter balanced.
func (c *CallStack) Enter() bool {
	c.depth++
	return c.depth <= c.maxDepth
}

// Exit decrements the depth. It is safe to call even when Enter
// reported overflow, so the call path's single Exit-on-every-exit
// discipline does not need a special case.
func (c *CallStack) Exit() {
	if c.depth > 0 {
		c.depth--
	}
}

// Depth returns the current call depth.
func (c *CallStack) Depth() int {
	return c.depth
}
