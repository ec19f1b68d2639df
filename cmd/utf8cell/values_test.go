package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/output"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"U+1F600", 0x1F600, true},
		{"u+e9", 0xE9, true},
		{"0x4E2D", 0x4E2D, true},
		{"0X41", 0x41, true},
		{"65", 65, true},
		{"4294967296", 1 << 32, true},
		{"A", 'A', true},
		{"é", 0xE9, true},
		{"😀", 0x1F600, true},
		{"U+ZZ", 0, false},
		{"AB", 0, false},
		{"", 0, false},
		{"\xff", 0, false},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseValue(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseValue(%q) = 0x%X, want 0x%X", tt.in, got, tt.want)
		}
		if !tt.ok && !errors.HasKind(err, errors.KindInvalidInput) {
			t.Errorf("parseValue(%q) error kind: %v", tt.in, err)
		}
	}
}

func TestClassifyValues(t *testing.T) {
	var out bytes.Buffer
	if err := classifyValues(&out, []string{"A", "U+E9", "0x4E2D", "U+1F600", "U+110000", "0x100000000"}); err != nil {
		t.Fatal(err)
	}
	want := "U+0041\t1\nU+00E9\t2\nU+4E2D\t3\nU+1F600\t4\nU+110000\tinvalid\nU+100000000\tinvalid\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestWriteHex(t *testing.T) {
	var out bytes.Buffer
	err := writeHex(&out, utf8cell.Width32, []uint64{0x41, 0xE9, 0x110000})
	if err != nil {
		t.Fatal(err)
	}
	want := "U+0041\tu32\t41\nU+00E9\tu32\tC3 A9\nU+110000\tu32\t-\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	err = writeHex(&out, utf8cell.Width16, []uint64{0x10000})
	if !errors.HasKind(err, errors.KindOutOfRange) {
		t.Errorf("u16 0x10000: got %v", err)
	}
	if !isFatal(err) {
		t.Error("out of range should be fatal")
	}

	err = writeHex(&out, utf8cell.Width32, []uint64{0x110000}, output.WithStrict())
	if !errors.HasKind(err, errors.KindInvalidCodePoint) {
		t.Errorf("strict: got %v", err)
	}
}

func TestWriteHex_RawByteWidth(t *testing.T) {
	var out bytes.Buffer
	if err := writeHex(&out, utf8cell.Width8, []uint64{0xE9}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "U+00E9\tu8\tE9\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestBitLayout(t *testing.T) {
	tests := []struct {
		seq  []byte
		want []bitGroup
	}{
		{[]byte{0x41}, []bitGroup{{"0", "1000001"}}},
		{[]byte{0xC3, 0xA9}, []bitGroup{{"110", "00011"}, {"10", "101001"}}},
		{[]byte{0xE4, 0xB8, 0xAD}, []bitGroup{{"1110", "0100"}, {"10", "111000"}, {"10", "101101"}}},
		{[]byte{0xF0, 0x9F, 0x98, 0x80}, []bitGroup{{"11110", "000"}, {"10", "011111"}, {"10", "011000"}, {"10", "000000"}}},
	}
	for _, tt := range tests {
		got := bitLayout(tt.seq, utf8cell.Width32)
		if len(got) != len(tt.want) {
			t.Fatalf("bitLayout(% X) = %v", tt.seq, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("bitLayout(% X)[%d] = %v, want %v", tt.seq, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBitLayout_RawByte(t *testing.T) {
	for _, b := range []byte{0x41, 0xE9, 0xFF} {
		got := bitLayout([]byte{b}, utf8cell.Width8)
		want := bitGroup{payload: fmt.Sprintf("%08b", b)}
		if len(got) != 1 || got[0] != want {
			t.Errorf("bitLayout(%02X, u8) = %v, want [%v]", b, got, want)
		}
	}
}

func TestIsFatal(t *testing.T) {
	if isFatal(errors.InvalidInput(errors.PhaseConfig, "bad")) {
		t.Error("config errors are not fatal")
	}
	if !isFatal(errors.IO(errors.PhaseFlush, nil)) {
		t.Error("io errors are fatal")
	}
}
