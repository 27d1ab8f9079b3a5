package trace_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hgweller/gopatmat/internal/pnode"
	"github.com/hgweller/gopatmat/internal/trace"
)

func TestOnVisitWritesOneLinePerNode(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf, trace.Debug)

	n := pnode.NewChar('a')
	w.OnVisit(0, n)
	w.OnVisit(1, n)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
}

func TestOnVisitSilentWithoutDebugFlag(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf, trace.Trace)

	w.OnVisit(0, pnode.NewChar('a'))

	if buf.Len() != 0 {
		t.Fatalf("expected no Debug output, got %q", buf.String())
	}
}

func TestAnnotateSubjectPlacesCaret(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf, trace.Trace)

	w.AnnotateSubject("Hello World", 6)

	out := buf.String()
	if !strings.Contains(out, "Hello World") {
		t.Fatalf("missing subject line: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "^") {
		t.Fatalf("expected a caret line, got %q", out)
	}
	if len(lines[1])-1 != 6 {
		t.Fatalf("caret at column %d, want 6", len(lines[1])-1)
	}
}

func TestAnnotateSubjectSilentWithoutTraceFlag(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf, trace.Debug)

	w.AnnotateSubject("abc", 1)

	if buf.Len() != 0 {
		t.Fatalf("expected no Trace output, got %q", buf.String())
	}
}

func TestNilWriterOnVisitIsNoop(t *testing.T) {
	var w *trace.Writer
	w.OnVisit(0, pnode.NewChar('a')) // must not panic
}
