package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/utf8cell/errors"
)

// StartFunc is the guest export Run calls.
const StartFunc = "_start"

// Run compiles and instantiates a guest in rt and calls its _start export.
// If the guest trapped inside a put_* call, the host's structured error is
// returned; other traps are reported as KindTrap.
func (m *Module) Run(ctx context.Context, rt wazero.Runtime, wasm []byte) error {
	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "compile guest module")
	}
	defer compiled.Close(ctx)

	// Start functions are disabled so _start runs through the error path below.
	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	guest, err := rt.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return errors.Instantiation(err)
	}
	defer guest.Close(ctx)

	start := guest.ExportedFunction(StartFunc)
	if start == nil {
		return errors.NotFound(errors.PhaseLoad, "export", StartFunc)
	}

	m.fault = nil
	if _, err := start.Call(ctx); err != nil {
		if m.fault != nil {
			fault := m.fault
			m.fault = nil
			return fault
		}
		return errors.Trap(StartFunc, err)
	}
	Logger().Debug("guest finished", zap.Uint64("cells", m.cells))
	return nil
}
