package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/codec"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/output"
)

// parseValue accepts U+XXXX, 0xXXXX, decimal, or a single character.
func parseValue(s string) (uint64, error) {
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		v, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 64)
	case s != "" && s[0] >= '0' && s[0] <= '9':
		v, err = strconv.ParseUint(s, 10, 64)
	case utf8.RuneCountInString(s) == 1:
		r, _ := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			err = fmt.Errorf("not valid UTF-8")
		}
		v = uint64(r)
	default:
		err = fmt.Errorf("expected U+XXXX, 0xXXXX, a decimal number or one character")
	}
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(s).
			Cause(err).
			Detail("parse value %q", s).
			Build()
	}
	return v, nil
}

func parseValues(args []string) ([]uint64, error) {
	values := make([]uint64, 0, len(args))
	for _, a := range args {
		v, err := parseValue(a)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// classifyOf returns the UTF-8 length of v, treating values beyond 32 bits
// as unclassifiable.
func classifyOf(v uint64) codec.Length {
	if v > math.MaxUint32 {
		return codec.Invalid
	}
	return codec.Classify(uint32(v))
}

func classifyValues(out io.Writer, args []string) error {
	values, err := parseValues(args)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Fprintf(out, "%s\t%s\n", label(v), classifyOf(v))
	}
	return nil
}

func label(v uint64) string {
	return fmt.Sprintf("U+%04X", v)
}

// encodeCell runs v through an output.Writer over a buffer so the hex view
// applies the same width checks as raw output.
func encodeCell(width utf8cell.Width, v uint64, opts ...output.Option) ([]byte, error) {
	var buf bytes.Buffer
	w := output.NewWriter(&buf, opts...)
	if _, err := w.Put(width, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hexBytes(seq []byte) string {
	parts := make([]string, len(seq))
	for i, b := range seq {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func writeHex(out io.Writer, width utf8cell.Width, values []uint64, opts ...output.Option) error {
	for _, v := range values {
		seq, err := encodeCell(width, v, opts...)
		if err != nil {
			return err
		}
		if len(seq) == 0 {
			fmt.Fprintf(out, "%s\t%s\t-\n", label(v), width)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", label(v), width, hexBytes(seq))
	}
	return nil
}

// bitGroup is one byte of a sequence split into its fixed header bits and
// its payload bits.
type bitGroup struct {
	header  string
	payload string
}

// bitLayout splits each byte of a UTF-8 sequence into header and payload bits.
// An 8-bit cell is a raw byte and is returned as payload only.
func bitLayout(seq []byte, width utf8cell.Width) []bitGroup {
	groups := make([]bitGroup, len(seq))
	if width == utf8cell.Width8 {
		for i, b := range seq {
			groups[i] = bitGroup{payload: fmt.Sprintf("%08b", b)}
		}
		return groups
	}
	for i, b := range seq {
		bits := fmt.Sprintf("%08b", b)
		var n int
		switch {
		case len(seq) == 1:
			n = 1
		case i == 0:
			n = len(seq) + 1
		default:
			n = 2
		}
		groups[i] = bitGroup{header: bits[:n], payload: bits[n:]}
	}
	return groups
}
