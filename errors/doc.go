// Package errors provides structured error types for the utf8cell library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending value, the cell width, a location path and
// the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindOutOfRange).
//		Path("utf8cell", "put_u16").
//		Width("u16").
//		Value(uint64(0x10000)).
//		Detail("value does not fit").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseWrite, "u16", 0x10000, 0xFFFF)
//	err := errors.IO(errors.PhaseFlush, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
