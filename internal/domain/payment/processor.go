package payment

import "context"

// Processor settles payment for a persisted order. Transport failures come
// back as errors; declines come back as a failed Result with a nil error.
type Processor interface {
	Pay(ctx context.Context, req Request) (Result, error)
}
