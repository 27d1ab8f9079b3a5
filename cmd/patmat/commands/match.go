package commands

import (
	"fmt"

	"github.com/google/uuid"

	patmat "github.com/hgweller/gopatmat"
	"github.com/hgweller/gopatmat/internal/catalog"
	"github.com/hgweller/gopatmat/internal/trace"
)

// MatchCommand builds the named catalog pattern and runs it against
// subject, printing the matched span or the failure outcome. A
// correlation id is minted per run and printed on stdout with the
// outcome; the trace lines written to stderr do not carry it.
func MatchCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: patmat match <catalog-name> <subject> [--anchor] [--trace]")
	}
	name, subject := args[0], args[1]
	anchor, debugTrace := false, false
	for _, a := range args[2:] {
		switch a {
		case "--anchor":
			anchor = true
		case "--trace":
			debugTrace = true
		}
	}

	entry, err := catalog.Lookup(name)
	if err != nil {
		return err
	}

	runID := uuid.New()

	var w *trace.Writer
	if debugTrace {
		w = trace.Stderr(trace.Debug | trace.Trace)
	}

	res := patmat.Match(subject, entry.Build(), patmat.Flags{Anchor: anchor, Tracer: w})

	fmt.Printf("run %s: %s\n", runID, res.Outcome)
	switch res.Outcome {
	case patmat.Success:
		fmt.Printf("span: %q (bytes %d-%d)\n", res.Span(subject), res.Start, res.Stop)
	default:
		if res.Err != nil {
			fmt.Printf("error: %v\n", res.Err)
		}
	}
	return nil
}
