package clients

import (
	"errors"
	"fmt"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

var (
	// ErrBridgeNotInitialized is returned when no backend has been verified yet
	ErrBridgeNotInitialized = errors.New("bridge not initialized")

	// ErrBackendUnreachable is wrapped by BackendUnreachableError
	ErrBackendUnreachable = errors.New("backend unreachable")

	// ErrNotFound is returned when a single entity fetch matches nothing
	ErrNotFound = errors.New("not found")

	// ErrNoActiveSession is a local precondition failure raised before any I/O
	ErrNoActiveSession = errors.New("no active connection")

	ErrQueryNotSupported = errors.New("query execution is not supported by the rest protocol")

	ErrInvalidConnectParams = structs.ErrInvalidConnectParams
)

// BackendUnreachableError reports a failed health probe for one protocol variant
type BackendUnreachableError struct {
	Protocol structs.Protocol
	Port     int
	Err      error
}

func (e *BackendUnreachableError) Error() string {
	return fmt.Sprintf("%s bridge is not reachable on port %d: %v", e.Protocol, e.Port, e.Err)
}

func (e *BackendUnreachableError) Unwrap() []error {
	return []error{ErrBackendUnreachable, e.Err}
}

// StatusError is returned when a bridge answers with an unexpected HTTP status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// NotFoundError wraps ErrNotFound with the kind and name that was looked up
func NotFoundError(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
}

// IsConnectivity reports whether err means no backend could serve the call
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrBackendUnreachable) || errors.Is(err, ErrBridgeNotInitialized)
}
