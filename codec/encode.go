package codec

import "github.com/wippyai/utf8cell/errors"

const (
	tx = 0x80 // 1000 0000
	t2 = 0xC0 // 1100 0000
	t3 = 0xE0 // 1110 0000
	t4 = 0xF0 // 1111 0000

	maskx = 0x3F // 0011 1111
	mask2 = 0x1F // 0001 1111
	mask3 = 0x0F // 0000 1111
	mask4 = 0x07 // 0000 0111
)

// Encode writes the UTF-8 encoding of cp into dst and returns the number of
// bytes written. dst must hold MaxLen bytes. Nothing is written for an
// invalid cp and 0 is returned; bytes past the returned count are untouched.
func Encode(dst []byte, cp uint32) int {
	switch Classify(cp) {
	case 1:
		dst[0] = byte(cp & 0x7F)
		return 1
	case 2:
		_ = dst[1]
		dst[0] = t2 | byte(cp>>6)&mask2
		dst[1] = tx | byte(cp)&maskx
		return 2
	case 3:
		_ = dst[2]
		dst[0] = t3 | byte(cp>>12)&mask3
		dst[1] = tx | byte(cp>>6)&maskx
		dst[2] = tx | byte(cp)&maskx
		return 3
	case 4:
		_ = dst[3]
		dst[0] = t4 | byte(cp>>18)&mask4
		dst[1] = tx | byte(cp>>12)&maskx
		dst[2] = tx | byte(cp>>6)&maskx
		dst[3] = tx | byte(cp)&maskx
		return 4
	}
	return 0
}

// Append appends the UTF-8 encoding of cp to dst. An invalid cp appends nothing.
func Append(dst []byte, cp uint32) []byte {
	var buf [MaxLen]byte
	n := Encode(buf[:], cp)
	return append(dst, buf[:n]...)
}

// EncodeChecked is Encode with errors in place of the sentinel: an invalid cp
// or a dst too short for the classified length is reported instead of
// returning 0 or panicking. dst only needs room for the actual sequence.
func EncodeChecked(dst []byte, cp uint32) (int, error) {
	n := Classify(cp)
	if !n.Valid() {
		return 0, errors.InvalidCodePoint(errors.PhaseEncode, uint64(cp))
	}
	if len(dst) < int(n) {
		return 0, errors.OutOfBounds(errors.PhaseEncode, int(n), len(dst))
	}
	var buf [MaxLen]byte
	Encode(buf[:], cp)
	return copy(dst, buf[:n]), nil
}
