package entitycache

// Status tells how a Result was produced
type Status int

const (
	// StatusFresh means the value came from a successful backend call or an
	// already hydrated record
	StatusFresh Status = iota
	// StatusStale means the backend call failed and the value is what was
	// cached before the call
	StatusStale
	// StatusFailed means the backend call failed and nothing was cached
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	default:
		return "failed"
	}
}

// Result carries a value together with how it was obtained. Err is set for
// stale and failed results.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func Fresh[T any](value T) Result[T] {
	return Result[T]{Value: value, Status: StatusFresh}
}

func Stale[T any](value T, cause error) Result[T] {
	return Result[T]{Value: value, Status: StatusStale, Err: cause}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

// Ok reports whether the result holds a usable value
func (r Result[T]) Ok() bool {
	return r.Status != StatusFailed
}
