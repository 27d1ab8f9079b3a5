// Package trace implements the two independent diagnostic flags of
// (Debug, Trace) as an internal/debugger-style writer: one
// line per node visited, at a flat indent, plus a
// subject/cursor annotation — without the breakpoint and step
// machinery a single-pass backtracking VM has no use for.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"

	"github.com/hgweller/gopatmat/internal/config"
	"github.com/hgweller/gopatmat/internal/pnode"
)

// Flag is a bitmask of diagnostic output modes.
type Flag int

const (
	Debug Flag = 1 << iota // one line per node visited
	_                      // reserved, aligned with the matcher's Anchor bit position
	Trace                  // subject/cursor caret annotation
)

// Writer renders Debug/Trace output to an underlying io.Writer,
// coloring region-depth indentation when that writer is a terminal.
type Writer struct {
	out   io.Writer
	flags Flag
	color bool
}

// NewWriter builds a Writer over out with the given flags. Color is
// auto-detected via go-isatty when out is an *os.File, and forced off
// when internal/config's NoColor (PATMAT_NO_COLOR) is set.
func NewWriter(out io.Writer, flags Flag) *Writer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if color && config.Load().NoColor {
		color = false
	}
	return &Writer{out: out, flags: flags, color: color}
}

// Stderr builds a Writer over os.Stderr, the default diagnostic sink.
func Stderr(flags Flag) *Writer { return NewWriter(os.Stderr, flags) }

// Enabled reports whether f is set on this writer.
func (w *Writer) Enabled(f Flag) bool { return w.flags&f != 0 }

func (w *Writer) dim(s string) string {
	if !w.color {
		return s
	}
	return "\x1b[2m" + s + "\x1b[0m"
}

func (w *Writer) caret(s string) string {
	if !w.color {
		return s
	}
	return "\x1b[33m" + s + "\x1b[0m"
}

// OnVisit implements matcher.Tracer. It is always safe to call
// regardless of which flags are set; a Writer with neither Debug nor
// Trace enabled renders nothing.
func (w *Writer) OnVisit(cursor int, node *pnode.Node) {
	if w == nil {
		return
	}
	if w.Enabled(Debug) {
		w.debugLine(cursor, node)
	}
}

// debugLine writes one indent(region-level)-prefixed node line.
// Region level isn't tracked by the matcher's Tracer hook (it only
// hands back cursor and node), so this renders at a flat indent; a
// caller wanting depth-aware indentation can wrap Writer and track it
// from the REnter/RRemove/RRestore tags it also sees via OnVisit.
func (w *Writer) debugLine(cursor int, node *pnode.Node) {
	fmt.Fprintf(w.out, "%s %s\n",
		w.dim(fmt.Sprintf("[%d]", node.Index)),
		payloadLine(node, cursor))
}

// payload is a flat, cycle-free snapshot of the fields that vary by
// tag — pretty-printing *pnode.Node directly is unsafe since Next/Alt
// can point into a cycle (Arbno's self-loop, BreakX's retry ring).
type payload struct {
	Index       int
	Char        byte
	Open, Close byte
	Str         string
	NatLit      int
}

// payloadLine renders a node's tag and structured payload with
// kr/pretty instead of a hand-rolled switch-per-tag stringifier.
func payloadLine(node *pnode.Node, cursor int) string {
	p := payload{Index: node.Index, Char: node.Char, Open: node.Open, Close: node.Close, Str: node.Str, NatLit: node.NatLit}
	return fmt.Sprintf("%s @%d %s", node.Code, cursor, pretty.Sprint(p))
}

// AnnotateSubject renders the Trace (4) view: the subject with a
// caret under the current cursor position, e.g.
//
//	Hello World!
//	     ^
func (w *Writer) AnnotateSubject(subject string, cursor int) {
	if !w.Enabled(Trace) {
		return
	}
	fmt.Fprintln(w.out, subject)
	pad := strings.Repeat(" ", cursor)
	fmt.Fprintln(w.out, w.caret(pad+"^"))
}
