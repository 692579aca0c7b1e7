package hardware

import (
	"errors"
	"fmt"
	"os"
)

// FailureKind enumerates the expected ways a hardware probe can fail.
type FailureKind int

const (
	// SourceUnavailable means the OS query interface could not be
	// reached or initialized.
	SourceUnavailable FailureKind = iota
	// PermissionDenied means the interface refused access.
	PermissionDenied
	// Unsupported means the platform does not provide the interface.
	Unsupported
)

func (k FailureKind) String() string {
	switch k {
	case SourceUnavailable:
		return "source unavailable"
	case PermissionDenied:
		return "permission denied"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ProbeError is a classified probe failure for one domain. The report
// compiler renders these as domain-scoped failure notices; anything
// else propagates as a plain error.
type ProbeError struct {
	Domain Domain
	Kind   FailureKind
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Domain, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Domain, e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// AsProbeError unwraps err into a *ProbeError if one is in its chain.
func AsProbeError(err error) (*ProbeError, bool) {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// classify wraps a probe failure with its domain and failure kind.
// Already-classified errors pass through; permission errors from the
// OS map to PermissionDenied, everything else to SourceUnavailable.
func classify(d Domain, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProbeError
	if errors.As(err, &pe) {
		return err
	}
	kind := SourceUnavailable
	if errors.Is(err, os.ErrPermission) {
		kind = PermissionDenied
	}
	return &ProbeError{Domain: d, Kind: kind, Err: err}
}

// unsupported reports that the current platform has no probe source
// for the domain.
func unsupported(d Domain) error {
	return &ProbeError{Domain: d, Kind: Unsupported}
}
