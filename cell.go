package utf8cell

import (
	"io"
	"strconv"
)

// Sink is a byte stream that can be flushed after each cell.
// *bufio.Writer satisfies it.
type Sink interface {
	io.ByteWriter
	Flush() error
}

// Width is the declared bit width of a cell.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// Widths lists every supported width in ascending order.
var Widths = []Width{Width8, Width16, Width32, Width64}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Max returns the largest value a cell of width w can hold.
func (w Width) Max() uint64 {
	switch w {
	case Width8:
		return 0xFF
	case Width16:
		return 0xFFFF
	case Width32:
		return 0xFFFFFFFF
	case Width64:
		return ^uint64(0)
	}
	return 0
}

func (w Width) String() string {
	return "u" + strconv.Itoa(int(w))
}

// ParseWidth parses "8", "16", "32", "64" or the "u"-prefixed forms.
func ParseWidth(s string) (Width, bool) {
	if len(s) > 1 && (s[0] == 'u' || s[0] == 'U') {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	w := Width(n)
	return w, w.Valid()
}

// Cell is the set of unsigned integer types a cell can be stored in.
type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WidthOf returns the width of the cell type T.
func WidthOf[T Cell]() Width {
	var v T
	v--
	switch uint64(v) {
	case 0xFF:
		return Width8
	case 0xFFFF:
		return Width16
	case 0xFFFFFFFF:
		return Width32
	}
	return Width64
}
