// Package codec classifies Unicode code points by UTF-8 length and encodes
// them into caller-owned buffers.
//
// Both operations are pure. An out-of-range value (above MaxCodePoint) is not
// an error: Classify returns Invalid and Encode writes nothing and returns 0.
// Surrogate code points are encoded like any other three-byte value.
package codec
