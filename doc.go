// Package utf8cell encodes Unicode code points as UTF-8 and writes them to
// byte sinks one integer cell at a time.
//
// The library is organized into a few packages with distinct responsibilities:
//
//	utf8cell/            Root package with Sink, Width and Cell
//	├── codec/           Length classification and UTF-8 encoding
//	├── output/          Per-width writers over a flushing sink
//	├── host/            wazero host module exposing the writers to guests
//	├── errors/          Structured error types
//	└── cmd/utf8cell/    Command line front end
//
// # Quick Start
//
// Encode a code point into a caller buffer:
//
//	var buf [codec.MaxLen]byte
//	n := codec.Encode(buf[:], 0x1F600) // n == 4, buf == F0 9F 98 80
//
// Write cells to stdout, flushing after each one:
//
//	w := output.NewWriter(os.Stdout)
//	if _, err := w.PutU32(0x4E2D); err != nil {
//	    output.Fatal(err)
//	}
//
// Drive the writers from a WebAssembly guest:
//
//	rt := wazero.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	mod, err := host.Instantiate(ctx, rt, w)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = mod.Run(ctx, rt, guestBytes)
//
// # Error Model
//
// Code points above 0x10FFFF are not an error by default: the classifier
// returns length 0 and nothing is written. Cells that do not fit their
// declared width and sink failures are reported as *errors.Error values;
// output.Fatal turns them into process termination when the caller wants
// abort semantics.
//
// # Thread Safety
//
// codec functions are pure and safe for concurrent use. An output.Writer is
// NOT thread-safe: callers sharing one sink must serialize access.
package utf8cell
