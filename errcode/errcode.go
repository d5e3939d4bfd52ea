package errcode

import "errors"

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Code returns c, so a bare Code and a rich error are found alike by Of.
func (c Code) Code() Code { return c }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Transport
	TransportUnavailable Code = "transport_unavailable"
	IO                   Code = "io_error"
	InvalidAddress       Code = "invalid_address"

	// Registry
	DriverLoad       Code = "driver_load_error"
	DuplicateAddress Code = "duplicate_address"
	DuplicateType    Code = "duplicate_type"
	RegistrySealed   Code = "registry_sealed"

	// Resolution
	NoMatchingDevice  Code = "no_matching_device"
	AmbiguousSelector Code = "ambiguous_selector"
	InvalidSelector   Code = "invalid_selector"

	InvalidConfig Code = "invalid_config"
	Unsupported   Code = "unsupported"
	Error         Code = "error" // generic fallback
)

// E wraps a Code with the failing operation, a message and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, code) match on the carried Code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap builds an *E. A nil cause is allowed.
func Wrap(c Code, op string, err error) *E {
	e := &E{C: c, Op: op, Err: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

// Of extracts the first Code in err's chain, looking through %w wrapping
// and errors.Join. Errors carrying no code map to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var x interface{ Code() Code }
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
