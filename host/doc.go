// Package host exposes an output.Writer to WebAssembly guests as a wazero
// host module.
//
// The module (named "utf8cell" unless overridden) exports one function per
// cell width:
//
//	put_u8  (i32)  raw byte
//	put_u16 (i32)  code point, must be below 0x10000
//	put_u32 (i32)  code point
//	put_u64 (i64)  code point, must fit in 32 bits
//
// A width violation or sink failure is fatal to the guest: the host function
// panics with the *errors.Error, wazero turns the panic into a trap, and Run
// returns that error. Code points above 0x10FFFF write nothing, as with
// output.Writer.
//
// A Module is bound to one Writer and is not safe for concurrent guests.
package host
