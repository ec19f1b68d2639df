package output

import (
	"bufio"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/codec"
	"github.com/wippyai/utf8cell/errors"
)

// Writer writes cells to a Sink, flushing after each one.
// A Writer is not safe for concurrent use.
type Writer struct {
	sink   utf8cell.Sink
	strict bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithStrict makes PutU32 and the wider entry points report code points
// above 0x10FFFF as errors instead of silently writing nothing.
func WithStrict() Option {
	return func(w *Writer) {
		w.strict = true
	}
}

// NewWriter returns a Writer over w. If w is not already a utf8cell.Sink it
// is wrapped in a bufio.Writer, so every cell reaches w on flush.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	sink, ok := w.(utf8cell.Sink)
	if !ok {
		sink = bufio.NewWriter(w)
	}
	return NewSinkWriter(sink, opts...)
}

// NewSinkWriter returns a Writer over an existing sink.
func NewSinkWriter(sink utf8cell.Sink, opts ...Option) *Writer {
	w := &Writer{sink: sink}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Strict reports whether the writer was created WithStrict.
func (w *Writer) Strict() bool {
	return w.strict
}

// PutU8 writes v as a single raw byte, bypassing the encoder.
func (w *Writer) PutU8(v uint8) error {
	if err := w.sink.WriteByte(v); err != nil {
		return errors.IO(errors.PhaseWrite, err)
	}
	return w.flush()
}

// PutU16 writes v as a code point. Every uint16 is below 0x10000, so the
// width check cannot fail here; Put enforces it for untyped values.
func (w *Writer) PutU16(v uint16) (int, error) {
	return w.PutU32(uint32(v))
}

// PutU32 encodes cp and writes the bytes in order. A cp above 0x10FFFF
// writes nothing and, unless the writer is strict, returns (0, nil).
func (w *Writer) PutU32(cp uint32) (int, error) {
	var buf [codec.MaxLen]byte
	n := codec.Encode(buf[:], cp)
	if n == 0 {
		if w.strict {
			return 0, errors.InvalidCodePoint(errors.PhaseWrite, uint64(cp))
		}
		Logger().Debug("skipping unclassifiable code point", zap.Uint32("value", cp))
	}
	for i := 0; i < n; i++ {
		if err := w.sink.WriteByte(buf[i]); err != nil {
			return i, errors.IO(errors.PhaseWrite, err)
		}
	}
	return n, w.flush()
}

// PutU64 writes v as a code point. Values above math.MaxUint32 are rejected.
func (w *Writer) PutU64(v uint64) (int, error) {
	return w.Put(utf8cell.Width64, v)
}

// Put writes v as a cell of the given width. It is the dispatch used by
// callers that carry the width as data.
func (w *Writer) Put(width utf8cell.Width, v uint64) (int, error) {
	limit, err := limitOf(width)
	if err != nil {
		return 0, err
	}
	if v > limit {
		return 0, errors.OutOfRange(errors.PhaseWrite, width.String(), v, limit)
	}
	if width == utf8cell.Width8 {
		if err := w.PutU8(uint8(v)); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return w.PutU32(uint32(v))
}

// limitOf returns the largest value accepted for a width. 32- and 64-bit
// cells both hand their value to the 32-bit encoder.
func limitOf(width utf8cell.Width) (uint64, error) {
	switch width {
	case utf8cell.Width8, utf8cell.Width16:
		return width.Max(), nil
	case utf8cell.Width32, utf8cell.Width64:
		return math.MaxUint32, nil
	}
	return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
		Value(uint8(width)).
		Detail("unsupported cell width %d", uint8(width)).
		Build()
}

// PutCell writes v using the entry point for T's width.
func PutCell[T utf8cell.Cell](w *Writer, v T) (int, error) {
	return w.Put(utf8cell.WidthOf[T](), uint64(v))
}

func (w *Writer) flush() error {
	if err := w.sink.Flush(); err != nil {
		return errors.IO(errors.PhaseFlush, err)
	}
	return nil
}
