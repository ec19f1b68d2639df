package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // code point to bytes
	PhaseWrite  Phase = "write"  // cell to sink
	PhaseFlush  Phase = "flush"  // sink flush
	PhaseHost   Phase = "host"   // host module registration and calls
	PhaseLoad   Phase = "load"   // guest module loading
	PhaseRun    Phase = "run"    // guest execution
	PhaseConfig Phase = "config" // settings loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidCodePoint Kind = "invalid_code_point"
	KindOutOfRange       Kind = "out_of_range"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindIO               Kind = "io"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindInstantiation    Kind = "instantiation"
	KindRegistration     Kind = "registration"
	KindTrap             Kind = "trap"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Width  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Width != "" {
		b.WriteString(": cell ")
		b.WriteString(e.Width)
	}

	if e.Detail != "" {
		if e.Width != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// HasKind reports whether err is an *Error of the given kind, in any phase.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path, e.g. host module and export name
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Width sets the cell width name
func (b *Builder) Width(w string) *Builder {
	b.err.Width = w
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidCodePoint creates an error for a value outside 0..0x10FFFF
func InvalidCodePoint(phase Phase, cp uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCodePoint,
		Detail: fmt.Sprintf("U+%X is not a Unicode code point", cp),
		Value:  cp,
	}
}

// OutOfRange creates an error for a value that does not fit its cell width
func OutOfRange(phase Phase, width string, value, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Width:  width,
		Detail: fmt.Sprintf("value 0x%X exceeds 0x%X", value, limit),
		Value:  value,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, need, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("need %d bytes (length %d)", need, length),
		Value:  need,
	}
}

// IO wraps a sink failure
func IO(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: string(phase) + " sink",
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration creates a host registration error
func Registration(module string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register host module %q", module),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate guest module",
		Cause:  cause,
	}
}

// Trap creates an error for a guest call that trapped
func Trap(export string, cause error) *Error {
	return &Error{
		Phase:  PhaseRun,
		Kind:   KindTrap,
		Path:   []string{export},
		Detail: "guest trapped",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
