package host_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/host"
	"github.com/wippyai/utf8cell/internal/guest"
	"github.com/wippyai/utf8cell/output"
)

func newRuntime(t *testing.T) (context.Context, wazero.Runtime) {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })
	return ctx, rt
}

func buildGuest(t *testing.T, module string, cells ...uint64) []byte {
	t.Helper()
	if len(cells)%2 != 0 {
		t.Fatal("cells must be width/value pairs")
	}
	b := guest.NewBuilder(module)
	for i := 0; i < len(cells); i += 2 {
		if err := b.Put(utf8cell.Width(cells[i]), cells[i+1]); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	return b.Build()
}

func TestRun_WritesCells(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf))
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	wasm := buildGuest(t, "",
		8, 'A',
		16, 0xE9,
		32, 0x4E2D,
		64, 0x1F600,
		32, 0x110000,
		8, 0x0A,
	)
	if err := mod.Run(ctx, rt, wasm); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := buf.String(), "Aé中😀\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if mod.Cells() != 6 {
		t.Errorf("Cells() = %d, want 6", mod.Cells())
	}
}

func TestRun_RunsTwice(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf))
	if err != nil {
		t.Fatal(err)
	}
	wasm := buildGuest(t, "", 32, 'o', 32, 'k')
	for i := 0; i < 2; i++ {
		if err := mod.Run(ctx, rt, wasm); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if buf.String() != "okok" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRun_FatalCells(t *testing.T) {
	tests := []struct {
		name  string
		width uint64
		value uint64
		fn    string
	}{
		{"u16 above 0xFFFF", 16, 0x10000, "put_u16"},
		{"u64 above 32 bits", 64, 0x100000000, "put_u64"},
		{"u8 above 0xFF", 8, 0x100, "put_u8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rt := newRuntime(t)

			var buf bytes.Buffer
			mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf))
			if err != nil {
				t.Fatal(err)
			}

			// The guest stops at the bad cell; later cells are never written.
			wasm := buildGuest(t, "", 32, 'x', tt.width, tt.value, 32, 'y')
			err = mod.Run(ctx, rt, wasm)
			if !errors.HasKind(err, errors.KindOutOfRange) {
				t.Fatalf("Run: got %v, want out_of_range", err)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("not a structured error: %T", err)
			}
			if len(e.Path) != 2 || e.Path[0] != host.DefaultModuleName || e.Path[1] != tt.fn {
				t.Errorf("Path = %v", e.Path)
			}
			if buf.String() != "x" {
				t.Errorf("output = %q, want %q", buf.String(), "x")
			}
		})
	}
}

type failingSink struct{}

func (failingSink) WriteByte(byte) error { return stderrors.New("disk full") }
func (failingSink) Flush() error         { return nil }

func TestRun_SinkFailure(t *testing.T) {
	ctx, rt := newRuntime(t)

	mod, err := host.Instantiate(ctx, rt, output.NewSinkWriter(failingSink{}))
	if err != nil {
		t.Fatal(err)
	}
	err = mod.Run(ctx, rt, buildGuest(t, "", 32, 'x'))
	if !errors.HasKind(err, errors.KindIO) {
		t.Fatalf("got %v, want io", err)
	}
}

func TestRun_StrictWriter(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf, output.WithStrict()))
	if err != nil {
		t.Fatal(err)
	}
	err = mod.Run(ctx, rt, buildGuest(t, "", 32, 0x110000))
	if !errors.HasKind(err, errors.KindInvalidCodePoint) {
		t.Fatalf("got %v, want invalid_code_point", err)
	}
}

func TestRun_BadModule(t *testing.T) {
	ctx, rt := newRuntime(t)

	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	err = mod.Run(ctx, rt, []byte("not wasm"))
	if !errors.HasKind(err, errors.KindInvalidInput) {
		t.Errorf("got %v, want invalid_input", err)
	}
}

func TestRun_MissingImportModule(t *testing.T) {
	ctx, rt := newRuntime(t)

	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	err = mod.Run(ctx, rt, buildGuest(t, "elsewhere", 32, 'x'))
	if !errors.HasKind(err, errors.KindInstantiation) {
		t.Errorf("got %v, want instantiation", err)
	}
}

func TestInstantiate_ModuleName(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf), host.WithModuleName("env"))
	if err != nil {
		t.Fatal(err)
	}
	if mod.Name() != "env" {
		t.Errorf("Name() = %q", mod.Name())
	}
	if err := mod.Run(ctx, rt, buildGuest(t, "env", 32, 'z')); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if buf.String() != "z" {
		t.Errorf("output = %q", buf.String())
	}

	if _, err := host.Instantiate(ctx, rt, output.NewWriter(&buf), host.WithModuleName("")); !errors.HasKind(err, errors.KindInvalidInput) {
		t.Errorf("empty name: got %v", err)
	}
	if _, err := host.Instantiate(ctx, rt, output.NewWriter(&buf), host.WithModuleName("env")); !errors.HasKind(err, errors.KindRegistration) {
		t.Errorf("duplicate name: got %v", err)
	}
}

func TestExports(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf))
	if err != nil {
		t.Fatal(err)
	}

	exports := mod.Exports()
	if len(exports) != len(utf8cell.Widths) {
		t.Errorf("got %d exports, want %d", len(exports), len(utf8cell.Widths))
	}
	for _, w := range utf8cell.Widths {
		def, ok := exports[host.FuncName(w)]
		if !ok {
			t.Fatalf("missing export %s", host.FuncName(w))
		}
		want := api.ValueTypeI32
		if w == utf8cell.Width64 {
			want = api.ValueTypeI64
		}
		params := def.ParamTypes()
		if len(params) != 1 || params[0] != want {
			t.Errorf("%s params = %v, want [%v]", host.FuncName(w), params, want)
		}
		if len(def.ResultTypes()) != 0 {
			t.Errorf("%s has results %v", host.FuncName(w), def.ResultTypes())
		}
	}
}

func TestClose_ReleasesName(t *testing.T) {
	ctx, rt := newRuntime(t)

	var buf bytes.Buffer
	mod, err := host.Instantiate(ctx, rt, output.NewWriter(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if err := mod.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mod, err = host.Instantiate(ctx, rt, output.NewWriter(&buf))
	if err != nil {
		t.Fatalf("re-instantiate after Close: %v", err)
	}
	if err := mod.Run(ctx, rt, buildGuest(t, "", 32, 0x1F600)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if buf.String() != "😀" {
		t.Errorf("output = %q", buf.String())
	}
}
