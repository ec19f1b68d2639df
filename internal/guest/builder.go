// Package guest builds minimal core WebAssembly modules that print a fixed
// sequence of cells through the host module's put_* imports.
package guest

import (
	"math"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/host"
)

const (
	valI32   = 0x7f
	valI64   = 0x7e
	funcType = 0x60

	opI32Const = 0x41
	opI64Const = 0x42
	opCall     = 0x10
	opEnd      = 0x0b

	sectionType     = 0x01
	sectionImport   = 0x02
	sectionFunction = 0x03
	sectionExport   = 0x07
	sectionCode     = 0x0a

	kindFunc = 0x00
)

// Type indices; every module declares all three.
const (
	typeI32  = 0
	typeI64  = 1
	typeVoid = 2
)

// StartName is the exported entry point.
const StartName = host.StartFunc

type cell struct {
	width utf8cell.Width
	value uint64
}

// Builder accumulates cells and emits a module whose _start writes them in order.
type Builder struct {
	module string
	cells  []cell
}

// NewBuilder creates a builder importing from the named host module.
func NewBuilder(module string) *Builder {
	if module == "" {
		module = host.DefaultModuleName
	}
	return &Builder{module: module}
}

// Put appends a call to put_<width>(v). Widths below 64 are passed as i32,
// so v must fit in 32 bits; range checks against the width itself are left
// to the host so guests can exercise them.
func (b *Builder) Put(width utf8cell.Width, v uint64) error {
	if !width.Valid() {
		return errors.InvalidInput(errors.PhaseLoad, "unsupported cell width "+width.String())
	}
	if width != utf8cell.Width64 && v > math.MaxUint32 {
		return errors.OutOfRange(errors.PhaseLoad, "i32", v, math.MaxUint32)
	}
	b.cells = append(b.cells, cell{width: width, value: v})
	return nil
}

// Len returns the number of cells added so far.
func (b *Builder) Len() int {
	return len(b.cells)
}

// Build generates the WASM module bytes.
func (b *Builder) Build() []byte {
	imports := b.usedWidths()

	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	wasm = appendSection(wasm, sectionType, buildTypeSection())
	if len(imports) > 0 {
		wasm = appendSection(wasm, sectionImport, b.buildImportSection(imports))
	}
	wasm = appendSection(wasm, sectionFunction, []byte{0x01, typeVoid})
	wasm = appendSection(wasm, sectionExport, buildExportSection(uint32(len(imports))))
	wasm = appendSection(wasm, sectionCode, b.buildCodeSection(imports))

	return wasm
}

func appendSection(wasm []byte, id byte, section []byte) []byte {
	wasm = append(wasm, id)
	wasm = AppendULEB128(wasm, uint32(len(section)))
	return append(wasm, section...)
}

// usedWidths returns the widths referenced by cells in ascending order; the
// position in the result is the import's function index.
func (b *Builder) usedWidths() []utf8cell.Width {
	seen := make(map[utf8cell.Width]bool)
	for _, c := range b.cells {
		seen[c.width] = true
	}
	var out []utf8cell.Width
	for _, w := range utf8cell.Widths {
		if seen[w] {
			out = append(out, w)
		}
	}
	return out
}

func buildTypeSection() []byte {
	return []byte{
		0x03,
		funcType, 0x01, valI32, 0x00,
		funcType, 0x01, valI64, 0x00,
		funcType, 0x00, 0x00,
	}
}

func (b *Builder) buildImportSection(widths []utf8cell.Width) []byte {
	var section []byte
	section = AppendULEB128(section, uint32(len(widths)))

	for _, w := range widths {
		name := host.FuncName(w)
		section = AppendULEB128(section, uint32(len(b.module)))
		section = append(section, b.module...)
		section = AppendULEB128(section, uint32(len(name)))
		section = append(section, name...)
		section = append(section, kindFunc)
		if w == utf8cell.Width64 {
			section = append(section, typeI64)
		} else {
			section = append(section, typeI32)
		}
	}
	return section
}

func buildExportSection(startIdx uint32) []byte {
	var section []byte
	section = append(section, 0x01)
	section = AppendULEB128(section, uint32(len(StartName)))
	section = append(section, StartName...)
	section = append(section, kindFunc)
	return AppendULEB128(section, startIdx)
}

func (b *Builder) buildCodeSection(widths []utf8cell.Width) []byte {
	index := make(map[utf8cell.Width]uint32, len(widths))
	for i, w := range widths {
		index[w] = uint32(i)
	}

	var body []byte
	body = append(body, 0x00) // no locals
	for _, c := range b.cells {
		if c.width == utf8cell.Width64 {
			body = append(body, opI64Const)
			body = AppendSLEB128(body, int64(c.value))
		} else {
			body = append(body, opI32Const)
			body = AppendSLEB128(body, int64(int32(uint32(c.value))))
		}
		body = append(body, opCall)
		body = AppendULEB128(body, index[c.width])
	}
	body = append(body, opEnd)

	var section []byte
	section = append(section, 0x01)
	section = AppendULEB128(section, uint32(len(body)))
	return append(section, body...)
}
