package eloquent

import "fmt"

// ExceptionTag identifies the kind of error an Exception carries, per
// the taxonomy in spec §7.
type ExceptionTag string

const (
	TagReaderError ExceptionTag = "READER-ERROR"
	TagTypeError   ExceptionTag = "TYPE-ERROR"
	TagArityError  ExceptionTag = "ARITY-ERROR"
	TagUnbound     ExceptionTag = "UNBOUND"
	TagArith       ExceptionTag = "ARITH"
	TagUser        ExceptionTag = "USER"
)

// EloquentError is the Go-side mirror of a *raised* Exception value:
// it's what a primitive or the VM returns through Go's own error
// channel when something can't proceed, before it gets turned into an
// Exception heap value that the VM's CATCH/backtrace machinery deals
// with. See Exception (value.go) for the first-class Lisp-visible
// counterpart.
type EloquentError struct {
	Tag     ExceptionTag
	Message string
}

func (e EloquentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Message)
}

func NewError(tag ExceptionTag, format string, args ...any) EloquentError {
	return EloquentError{Tag: tag, Message: fmt.Sprintf(format, args...)}
}

// vmFault marks a condition the compiler is responsible for
// preventing: corrupt bytecode, an opcode dispatch with no matching
// case, a CALL on a value that isn't callable. The VM doesn't try to
// recover from these: run() returns the vmFault as its error without
// consulting any CATCH handler, and the embedder reports it as a fatal
// error (spec §7, "fatal" kind).
type vmFault struct {
	reason string
}

func (f vmFault) Error() string { return "fatal: " + f.reason }

func faultf(format string, args ...any) vmFault {
	return vmFault{reason: fmt.Sprintf(format, args...)}
}
