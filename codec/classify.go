package codec

import "strconv"

// MaxCodePoint is the largest Unicode code point.
const MaxCodePoint = 0x10FFFF

// MaxLen is the longest UTF-8 sequence; Encode needs a buffer this large.
const MaxLen = 4

const (
	len1Max = 1<<7 - 1  // 0x7F
	len2Max = 1<<11 - 1 // 0x7FF
	len3Max = 1<<16 - 1 // 0xFFFF
)

// Length is the number of bytes a code point occupies in UTF-8.
type Length uint8

// Invalid is the sentinel length of an unclassifiable value.
const Invalid Length = 0

// Valid reports whether l is a real sequence length.
func (l Length) Valid() bool {
	return l >= 1 && l <= MaxLen
}

func (l Length) String() string {
	if !l.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(l))
}

// Classify returns the UTF-8 length of cp, or Invalid above MaxCodePoint.
func Classify(cp uint32) Length {
	switch {
	case cp <= len1Max:
		return 1
	case cp <= len2Max:
		return 2
	case cp <= len3Max:
		return 3
	case cp <= MaxCodePoint:
		return 4
	}
	return Invalid
}
