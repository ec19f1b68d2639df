// Package output writes integer cells to a byte sink as UTF-8.
//
// A Writer exposes one entry point per cell width. PutU8 writes the value as
// a raw byte; the wider entry points treat the value as a code point, check it
// fits the declared width, encode it with package codec and write the bytes in
// order. The sink is flushed after every cell.
//
// Code points above 0x10FFFF write nothing and are not an error unless the
// Writer was created WithStrict. Width violations and sink failures are
// returned as *errors.Error; Fatal and Must give the caller abort semantics.
package output
