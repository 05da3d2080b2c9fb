package pipeline

import (
	"context"
	"errors"
	"fmt"
)

type canceledError struct {
	cause error
}

func (e *canceledError) Error() string {
	return fmt.Sprintf("request canceled: %v", e.cause)
}

func (e *canceledError) Is(target error) bool {
	return target == ErrCanceled
}

func (e *canceledError) Unwrap() error {
	return e.cause
}

// asCanceled marks err as a cancellation when it was caused by ctx being
// done. Other errors are returned unchanged.
func asCanceled(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, ErrCanceled) {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return &canceledError{cause: err}
	}

	return err
}

func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

var (
	ErrCanceled              = errors.New("request canceled")
	ErrChainExhausted        = errors.New("interceptor chain has no next interceptor")
	ErrDuplicateInterceptor  = errors.New("interceptor key is already registered")
	ErrUnexpectedMemoryValue = errors.New("memory cache holds a value of unexpected type")
)
