package output

// SetExit replaces the process exit hook and returns a restore func.
func SetExit(fn func(int)) func() {
	prev := exit
	exit = fn
	return func() { exit = prev }
}

// SetStdout replaces the shared standard output writer and returns a restore func.
func SetStdout(w *Writer) func() {
	Stdout()
	prev := stdout
	stdout = w
	return func() { stdout = prev }
}
