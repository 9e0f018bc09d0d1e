package runtime

import (
	lerrors "github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/source"
)

// newStackOverflow reports exceeding the configured call-stack depth
// (see CallStack). It carries no source position of its own: the
// interpreter repositions it at the offending call expression before
// it reaches a user-visible diagnostic (see interp's call handling).
func newStackOverflow() error {
	return lerrors.New(lerrors.PhaseRuntime, lerrors.StackOverflow, "Stack overflow.", source.CharPos{})
}
