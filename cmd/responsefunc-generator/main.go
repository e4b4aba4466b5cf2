// Command responsefunc-generator turns DTO schemas into response templates.
//
// Usage:
//
//	responsefunc-generator generate --schema address.json --out ./responses --allow AddressWsDTO
//	responsefunc-generator classify KEY...
//	responsefunc-generator encode PATH
//	responsefunc-generator decode TEXT
//
// Exit status is 0 on success, 1 when a conversion is rejected or fails and
// 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usage = `responsefunc-generator turns DTO schemas into response templates.

Usage:
  responsefunc-generator <command> [flags] [args]

Commands:
  generate   convert schema files into template files
  classify   show the generator chosen for each key
  encode     base64-encode a path
  decode     decode a base64 path

Run "responsefunc-generator <command> --help" for command flags.
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}

		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return usageErrorf("missing command")
	}

	switch args[0] {
	case "generate":
		return runGenerate(args[1:], stdout, stderr)
	case "classify":
		return runClassify(args[1:], stdout, stderr)
	case "encode":
		return runEncode(args[1:], stdout, stderr)
	case "decode":
		return runDecode(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return usageErrorf("unknown command %q", args[0])
	}
}

// usageError is a command-line error; it exits with status 2.
type usageError struct {
	err error
}

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }
