package splice

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Invocation is a parsed command line.
type Invocation struct {
	Output  string
	Tokens  []string
	DryRun  bool
	Verbose bool
}

// ParseInvocation parses the arguments after the program name. -h or --help
// anywhere on the line is a help request, reported as a *UsageError with an
// empty message.
func ParseInvocation(args []string) (Invocation, error) {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return Invocation{}, &UsageError{}
		}
	}

	fs := flag.NewFlagSet("pdfsplice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var inv Invocation
	fs.BoolVar(&inv.Verbose, "v", false, "Verbose (debug) logging.")
	fs.BoolVar(&inv.DryRun, "n", false, "Print the page plan without writing OUTFILE.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Invocation{}, &UsageError{}
		}
		return Invocation{}, usagef("%v", err)
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return Invocation{}, usagef("need an output file and at least one input file")
	}
	inv.Output = rest[0]
	inv.Tokens = rest[1:]
	return inv, nil
}

// Usage returns the help text for prog.
func Usage(prog string) string {
	return fmt.Sprintf(`Splice PDF files

usage: %[1]s [-v] [-n] OUTFILE FILE1 [PAGES] [PAGES...] [ FILE2 [=] [PAGES] [PAGES...] ...]
       %[1]s OUTFILE FILE spreadfix

PAGES can be a single page (e.g. 7), a range (e.g. 2-5 7- -11 7-3),
a comma list (e.g. 1,3-5,9-) or a rotation (R90, R-90, R180) that
applies to the pages after it. FILE may be a path, file://, http(s)://
or s3:// reference; OUTFILE may be a path or s3:// reference.

  -v  debug logging
  -n  dry run: print the page plan, write nothing

Examples:
  %[1]s out.pdf input1.pdf 1-5 10 20-
  Create out.pdf from input1.pdf pages 1-5, 10 and 20 onwards

  %[1]s out.pdf input1.pdf 1-5 input2.pdf 2-
  Create out.pdf from input1.pdf pages 1-5 followed by input2.pdf pages 2 onwards

  %[1]s out.pdf input1.pdf input2.pdf =
  Create out.pdf by interleaving input1.pdf and input2.pdf, page by page

  %[1]s out.pdf input1.pdf R90 1-4 R0 5-
  Rotate pages 1-4 clockwise, keep the rest as they are

  %[1]s out.pdf booklet.pdf spreadfix
  Restore reading order of a booklet scanned as printer spreads
`, prog)
}
