// Package patmat is the public surface of a SNOBOL4/SPITBOL-style
// pattern matching library: build a Pattern with the constructors in
// the pattern subpackage, then match it against a subject with the
// functions below.
//
// Character-class helpers, a pretty-printer and the ergonomic
// operator-overload surface (string/char shortcuts, `&`/`|` sugar)
// are deliberately not part of this package; they are thin wrappers a
// caller can layer over the pattern subpackage's graph constructors.
package patmat

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hgweller/gopatmat/internal/matcher"
	"github.com/hgweller/gopatmat/internal/pattern"
)

// Outcome mirrors matcher.Outcome at the public surface so callers
// never need to import internal/matcher directly.
type Outcome = matcher.Outcome

const (
	Success               = matcher.Success
	Failure               = matcher.Failure
	UninitialisedPattern  = matcher.UninitialisedPattern
	Exception             = matcher.Exception
)

// Flags selects anchor/debug/trace behaviour.
type Flags struct {
	Anchor bool
	Tracer matcher.Tracer

	// InitialStackSize overrides the matcher's history-stack starting
	// capacity; zero uses the matcher's own default. See
	// internal/config's StackSize for where a caller typically sources
	// this (PATMAT_STACK_SIZE) when benchmarking a pattern known to
	// need deep backtracking.
	InitialStackSize int
}

// MatchResult reports the verdict and, on Success, the 1-based
// matched span.
type MatchResult struct {
	Outcome Outcome
	Start   int
	Stop    int
	Err     error
}

// Span returns the matched substring of subject, or "" if Outcome is
// not Success.
func (r MatchResult) Span(subject string) string {
	if r.Outcome != Success {
		return ""
	}
	return subject[r.Start-1 : r.Stop]
}

func run(subject string, p *pattern.Pattern, flags Flags) MatchResult {
	res := matcher.Run(subject, p, matcher.Options{Anchor: flags.Anchor, Tracer: flags.Tracer, InitialStackSize: flags.InitialStackSize})
	return MatchResult{Outcome: res.Outcome, Start: res.Start, Stop: res.Stop, Err: res.Err}
}

// Match runs p against subject without modifying it.
func Match(subject string, p *pattern.Pattern, flags Flags) MatchResult {
	return run(subject, p, flags)
}

// MatchReplace runs p against *subject and, on Success, replaces the
// matched span with replacement.
func MatchReplace(subject *string, p *pattern.Pattern, replacement string, flags Flags) MatchResult {
	res := run(*subject, p, flags)
	if res.Outcome == Success {
		*subject = (*subject)[:res.Start-1] + replacement + (*subject)[res.Stop:]
	}
	return res
}

// MatchAll runs p concurrently against every subject in subjects,
// preserving the input order in the returned slice. It is a pure
// reader: the match itself never touches shared mutable state outside
// whatever Setcur/Assign sinks the caller's own pattern graph closes
// over — the caller is responsible for those being either
// per-goroutine or otherwise safe to write from multiple matches at
// once; MatchAll does not serialise them.
func MatchAll(ctx context.Context, subjects []string, p *pattern.Pattern, flags Flags) ([]MatchResult, error) {
	results := make([]MatchResult, len(subjects))
	g, ctx := errgroup.WithContext(ctx)
	for i, subj := range subjects {
		i, subj := i, subj
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = run(subj, p, flags)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
