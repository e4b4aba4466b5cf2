package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"responsefunc-generator/internal/classify"
	"responsefunc-generator/internal/expr"
	"responsefunc-generator/internal/pathcodec"
)

// newFlagSet returns a flag set that reports parse errors as usage errors.
func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

// parseFlags parses args and maps pflag errors to usage errors. The
// returned bool is false when help was requested.
func parseFlags(fs *pflag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}

		return false, &usageError{err: err}
	}

	return true, nil
}

func runClassify(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("classify", stderr)
	templates := fs.Bool("expr", false, "print the template expression instead of the generator")
	listRules := fs.Bool("rules", false, "print the decision list instead of classifying keys")

	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if *listRules {
		if fs.NArg() > 0 {
			return usageErrorf("--rules takes no keys")
		}

		return printRules(stdout)
	}

	if fs.NArg() == 0 {
		return usageErrorf("classify needs at least one key")
	}

	builder := expr.MustDefault()

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	for _, key := range fs.Args() {
		g := classify.Classify(key)

		detail := g.Path
		if g.IsLiteral() {
			detail = g.Literal
		} else if g.Args != "" {
			detail += "(" + g.Args + ")"
		}

		if *templates {
			e, err := builder.Generator(g)
			if err != nil {
				return err
			}

			detail = string(e)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", key, g.Kind, detail)
	}

	return w.Flush()
}

// printRules writes the decision list in evaluation order, one rule per
// line: position, needles, refinements and the default kind.
func printRules(stdout io.Writer) error {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	for i, r := range classify.Rules() {
		refinements := make([]string, len(r.Refinements))
		for j, ref := range r.Refinements {
			refinements[j] = ref.Needle + "=" + ref.Kind.String()
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, strings.Join(r.Needles, "|"), strings.Join(refinements, ","), r.Default)
	}

	fmt.Fprintf(w, "-\t*\t\t%s\n", classify.Fallback)

	return w.Flush()
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)

	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		return usageErrorf("encode needs exactly one path")
	}

	fmt.Fprintln(stdout, pathcodec.Encode(fs.Arg(0)))

	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)

	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		return usageErrorf("decode needs exactly one argument")
	}

	path, err := pathcodec.Decode(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, path)

	return nil
}
