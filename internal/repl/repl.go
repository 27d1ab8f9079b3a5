// Package repl implements the interactive "try a pattern" loop,
// adapted from a scan-build-run dispatch loop: instead of
// lexing/parsing/compiling free-form source each line, each line is
// either a ":" command or a subject string matched against the
// currently selected catalog pattern (internal/catalog) — there is no
// textual pattern-description language here to parse into a live
// graph, only a fixed named catalog to select from.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	patmat "github.com/hgweller/gopatmat"
	"github.com/hgweller/gopatmat/internal/catalog"
	"github.com/hgweller/gopatmat/internal/store"
)

// Session holds the REPL's mutable state across lines: the selected
// catalog entry and an optional store for :save/:load/:history.
type Session struct {
	in      io.Reader
	out     io.Writer
	current catalog.CatalogEntry
	db      *store.Store
}

// New builds a Session reading from in and writing to out, starting
// on the "digits" catalog entry. db may be nil, in which case
// :save/:load/:history report an error instead of persisting anything.
func New(in io.Reader, out io.Writer, db *store.Store) *Session {
	first, _ := catalog.Lookup("digits")
	return &Session{in: in, out: out, current: first, db: db}
}

// Run reads lines until EOF or "exit", dispatching ":"-prefixed lines
// as commands and anything else as a subject to match.
func (s *Session) Run() {
	fmt.Fprintln(s.out, "patmat repl | type 'exit' to quit, ':help' for commands")
	scanner := bufio.NewScanner(s.in)

	for {
		fmt.Fprintf(s.out, "(%s)>> ", s.current.Name)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			s.command(line)
			continue
		}
		s.match(line)
	}
}

func (s *Session) command(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		fmt.Fprintln(s.out, ":use <name>   select a catalog pattern")
		fmt.Fprintln(s.out, ":list         list catalog patterns")
		fmt.Fprintln(s.out, ":show         print the current pattern's source")
		fmt.Fprintln(s.out, ":save <name>  save the current pattern under name in the store")
		fmt.Fprintln(s.out, ":load <name>  re-select the catalog pattern a saved name points at")
		fmt.Fprintln(s.out, ":history      list saved names and their source")

	case ":list":
		for _, n := range catalog.Names() {
			fmt.Fprintln(s.out, " ", n)
		}

	case ":use":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "usage: :use <name>")
			return
		}
		e, err := catalog.Lookup(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		s.current = e

	case ":show":
		fmt.Fprintln(s.out, s.current.Source)

	case ":save":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "usage: :save <name>")
			return
		}
		if s.db == nil {
			fmt.Fprintln(s.out, "no store configured for this session")
			return
		}
		// The catalog entry's own Name rides along in the flags
		// column so a later :load knows which entry to re-select.
		unchanged, err := s.db.Save(fields[1], s.current.Source, s.current.Name)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		if unchanged {
			fmt.Fprintln(s.out, "unchanged")
		} else {
			fmt.Fprintln(s.out, "saved")
		}

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "usage: :load <name>")
			return
		}
		if s.db == nil {
			fmt.Fprintln(s.out, "no store configured for this session")
			return
		}
		saved, err := s.db.Load(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		// saved.Flags carries the catalog entry name it was saved
		// under (see :save above) — there is no parser to turn
		// saved.Source back into a live pattern, so loading re-selects
		// that same catalog entry instead.
		e, err := catalog.Lookup(saved.Flags)
		if err != nil {
			fmt.Fprintf(s.out, "%q points at catalog entry %q, which no longer exists: %v\n", fields[1], saved.Flags, err)
			return
		}
		s.current = e

	case ":history":
		if s.db == nil {
			fmt.Fprintln(s.out, "no store configured for this session")
			return
		}
		ps, err := s.db.List()
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		for _, p := range ps {
			fmt.Fprintf(s.out, "  %-20s %s\n", p.Name, p.Source)
		}

	default:
		fmt.Fprintf(s.out, "unknown command %q (try :help)\n", fields[0])
	}
}

func (s *Session) match(subject string) {
	res := patmat.Match(subject, s.current.Build(), patmat.Flags{})
	switch res.Outcome {
	case patmat.Success:
		fmt.Fprintf(s.out, "match: %q\n", res.Span(subject))
	default:
		fmt.Fprintf(s.out, "%s\n", res.Outcome)
	}
}
