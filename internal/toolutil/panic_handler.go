package toolutil

import (
	"fmt"
	"runtime/debug"

	"github.com/stg34/llm-file-tools/internal/logutil"
)

// WithRecoveryResp runs fn and converts a panic into a returned error, so a
// misbehaving tool implementation cannot take down the caller. The panic
// value and stack are logged; the result is reset to its zero value.
func WithRecoveryResp[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logutil.Error("panic recovered", "panic", r, "stack", string(debug.Stack()))

		var zero T
		result = zero
		if e, ok := r.(error); ok {
			err = fmt.Errorf("panic recovered: %w", e)
			return
		}
		err = fmt.Errorf("panic recovered: %v", r)
	}()

	return fn()
}
