package cache

import "context"

// State is the lifecycle of one asynchronous operation as a view observes it.
type State int

const (
	// Idle means the operation has not been invoked.
	Idle State = iota
	// Pending means a request is in flight; views may show a loading affordance.
	Pending
	// Success is terminal and carries the result.
	Success
	// Error is terminal and carries a human-readable failure reason. There is
	// no automatic retry; the operation stays failed until re-invoked.
	Error
)

// String returns the state name for templates and logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// Resource wraps one operation's outcome for rendering. It starts Idle,
// becomes Pending the instant Run is invoked, and settles into Success or
// Error when the operation returns.
type Resource[T any] struct {
	state State
	value T
	err   error
}

// NewResource returns an idle resource.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{state: Idle}
}

// Run invokes fn and records the outcome. A cancelled context settles the
// resource into Error like any other failure; it never panics, so a view torn
// down before its fetch resolves simply leaves an unobserved result behind.
func (r *Resource[T]) Run(ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	r.state = Pending
	value, err := fn(ctx)
	if err != nil {
		var zero T
		r.value = zero
		r.err = err
		r.state = Error
		return zero, err
	}
	r.value = value
	r.err = nil
	r.state = Success
	return value, nil
}

// State returns the current lifecycle state.
func (r *Resource[T]) State() State { return r.state }

// Value returns the result; meaningful only in Success.
func (r *Resource[T]) Value() T { return r.value }

// Err returns the failure; meaningful only in Error.
func (r *Resource[T]) Err() error { return r.err }
