package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/output"
)

// DefaultModuleName is the import module guests use for the put_* functions.
const DefaultModuleName = "utf8cell"

// FuncName returns the export name for a width, e.g. "put_u16".
func FuncName(w utf8cell.Width) string {
	return "put_" + w.String()
}

// Option configures Instantiate.
type Option func(*Module)

// WithModuleName overrides DefaultModuleName.
func WithModuleName(name string) Option {
	return func(m *Module) {
		m.name = name
	}
}

// Module is an instantiated host module.
type Module struct {
	mod    api.Module
	writer *output.Writer
	name   string
	fault  *errors.Error
	cells  uint64
}

// Instantiate registers the put_* functions in rt, writing to w.
func Instantiate(ctx context.Context, rt wazero.Runtime, w *output.Writer, opts ...Option) (*Module, error) {
	m := &Module{writer: w, name: DefaultModuleName}
	for _, opt := range opts {
		opt(m)
	}
	if m.name == "" {
		return nil, errors.InvalidInput(errors.PhaseHost, "module name cannot be empty")
	}

	builder := rt.NewHostModuleBuilder(m.name)
	for _, width := range utf8cell.Widths {
		param := api.ValueTypeI32
		if width == utf8cell.Width64 {
			param = api.ValueTypeI64
		}
		builder.NewFunctionBuilder().
			WithGoModuleFunction(m.handler(width), []api.ValueType{param}, nil).
			WithParameterNames("cell").
			Export(FuncName(width))
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(m.name, err)
	}
	m.mod = mod
	Logger().Debug("host module instantiated", zap.String("module", m.name))
	return m, nil
}

// Name returns the module name guests import from.
func (m *Module) Name() string {
	return m.name
}

// Exports returns the definitions of the put_* functions keyed by export name.
func (m *Module) Exports() map[string]api.FunctionDefinition {
	return m.mod.ExportedFunctionDefinitions()
}

// Close removes the host module from its runtime.
func (m *Module) Close(ctx context.Context) error {
	return m.mod.Close(ctx)
}

// Cells returns how many cells guests have written successfully.
func (m *Module) Cells() uint64 {
	return m.cells
}

func (m *Module) handler(width utf8cell.Width) api.GoModuleFunc {
	name := FuncName(width)
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		v := stack[0]
		if width != utf8cell.Width64 {
			v = uint64(api.DecodeU32(v))
		}

		n, err := m.writer.Put(width, v)
		if err != nil {
			m.fail(name, width, err)
		}
		m.cells++
		Logger().Debug("cell written",
			zap.String("func", name),
			zap.Uint64("value", v),
			zap.Int("bytes", n))
	}
}

// fail records err and panics so that wazero traps the calling guest.
func (m *Module) fail(name string, width utf8cell.Width, err error) {
	fault, ok := err.(*errors.Error)
	if !ok {
		fault = errors.Wrap(errors.PhaseHost, errors.KindIO, err, "write cell")
	}
	fault.Path = []string{m.name, name}
	if fault.Width == "" {
		fault.Width = width.String()
	}
	m.fault = fault
	Logger().Warn("guest cell rejected",
		zap.String("func", name),
		zap.Error(fault))
	panic(fault)
}
