package ecode

import (
	"errors"
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	missingMsg  = "missing"
)

// Kind classifies an error by how the process should report it
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindTransport
	KindResponseFormat
	KindGuard
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindTransport:
		return "transport"
	case KindResponseFormat:
		return "response format"
	case KindGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// Error is a classified error with the operation it came from
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Usage returns a usage error
func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// Transport wraps err as a transport error, nil stays nil
func Transport(op string, err error) error {
	return newError(KindTransport, op, err)
}

// ResponseFormat wraps err as a response format error, nil stays nil
func ResponseFormat(op string, err error) error {
	return newError(KindResponseFormat, op, err)
}

// Guard wraps err as a termination guard error, nil stays nil
func Guard(op string, err error) error {
	return newError(KindGuard, op, err)
}

// KindOf returns the kind of the outermost classified error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindUsage:
		return 2
	case KindTransport:
		return 3
	case KindResponseFormat:
		return 4
	case KindGuard:
		return 5
	default:
		return 1
	}
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsEmpty returns field empty message
func FieldIsEmpty(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldIsMissing returns field missing message
func FieldIsMissing(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], missingMsg)
	}
	return missingMsg
}
