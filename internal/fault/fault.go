// Package fault holds the failure taxonomy reported by register reads.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Unclassified is any failure the link could not attribute to the
	// connection, the protocol or the caller.
	Unclassified Kind = iota
	// ConnectionFailure means the endpoint could not be reached.
	ConnectionFailure
	// ProtocolFailure means the endpoint answered but the registers for the
	// requested address could not be retrieved. The link drops the
	// connection when this happens.
	ProtocolFailure
	// InvalidArgument means the caller asked for a register count that does
	// not fit the requested data width.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case ConnectionFailure:
		return "connection_failure"
	case ProtocolFailure:
		return "protocol_failure"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unclassified"
	}
}

// openWB component fault states.
const (
	StateOK      = 0
	StateWarning = 1
	StateError   = 2
)

// State maps a fault kind to the openWB fault state shown to the operator.
func State(k Kind) int {
	if k == ProtocolFailure {
		return StateWarning
	}
	return StateError
}

type Fault struct {
	Kind     Kind
	Message  string
	Register uint16
	Err      error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// KindOf returns the kind of the first *Fault in err's chain. Errors without
// a fault are Unclassified.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unclassified
}

// MessageOf returns the operator text of the first *Fault in err's chain,
// falling back to err.Error().
func MessageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
