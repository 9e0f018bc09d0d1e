package interp

import (
	"time"

	"github.com/lox-lang/lox-go/internal/runtime"
)

// installBuiltins defines the native functions available in every
// fresh global frame, per spec.md §6.
func installBuiltins(env *runtime.Environment) {
	env.Define("clock", runtime.NewNativeFunction("clock", 0, func(_ runtime.Invoker, _ []runtime.Value) (runtime.Value, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
}
