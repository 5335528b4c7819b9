package repository

import (
	"fmt"

	"go.uber.org/zap"

	"seatkeeper/internal/domain"
	"seatkeeper/internal/result"
)

// recoverInto turns a panic raised inside a store call into a failure code
// on the named result, so no fault escapes the store boundary.
func recoverInto[T any](res *result.Result[T, domain.FailureCode], logger *zap.Logger, op string, code domain.FailureCode) {
	if p := recover(); p != nil {
		logger.Error("store operation panicked",
			zap.String("op", op),
			zap.String("panic", fmt.Sprint(p)),
			zap.Stack("stack"),
		)
		*res = result.Failure[T](code)
	}
}
