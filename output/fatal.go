package output

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// ExitAbort is the exit status used by Fatal, matching a process killed by SIGABRT.
const ExitAbort = 134

var exit = os.Exit

// Fatal logs err and terminates the process with ExitAbort.
func Fatal(err error) {
	Logger().Error("fatal output error", zap.Error(err))
	_ = Logger().Sync()
	fmt.Fprintf(os.Stderr, "utf8cell: %v\n", err)
	exit(ExitAbort)
}

// Must returns n, or terminates the process through Fatal if err is non-nil.
func Must(n int, err error) int {
	if err != nil {
		Fatal(err)
	}
	return n
}

var (
	stdout     *Writer
	stdoutOnce sync.Once
)

// Stdout returns the shared Writer over the process's standard output.
func Stdout() *Writer {
	stdoutOnce.Do(func() {
		if stdout == nil {
			stdout = NewWriter(os.Stdout)
		}
	})
	return stdout
}

// WriteU8 writes a raw byte to standard output and aborts on failure.
func WriteU8(v uint8) {
	if err := Stdout().PutU8(v); err != nil {
		Fatal(err)
	}
}

// WriteU16 writes a 16-bit cell to standard output and aborts on failure.
func WriteU16(v uint16) {
	Must(Stdout().PutU16(v))
}

// WriteU32 writes a code point to standard output and aborts on failure.
func WriteU32(cp uint32) {
	Must(Stdout().PutU32(cp))
}

// WriteU64 writes a 64-bit cell to standard output and aborts if it does
// not fit in 32 bits or the write fails.
func WriteU64(v uint64) {
	Must(Stdout().PutU64(v))
}
