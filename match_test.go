package patmat_test

import (
	"context"
	"testing"

	patmat "github.com/hgweller/gopatmat"
	"github.com/hgweller/gopatmat/internal/charset"
	"github.com/hgweller/gopatmat/internal/pattern"
)

func TestMatchReportsSpan(t *testing.T) {
	p := pattern.Span(charset.Digit())
	res := patmat.Match("abc123def", p, patmat.Flags{})
	if res.Outcome != patmat.Success {
		t.Fatalf("outcome = %v, want Success", res.Outcome)
	}
	if res.Span("abc123def") != "123" {
		t.Fatalf("span = %q, want %q", res.Span("abc123def"), "123")
	}
}

func TestMatchUnanchoredFailsWithNoOccurrence(t *testing.T) {
	p := pattern.Char('z')
	res := patmat.Match("abc", p, patmat.Flags{})
	if res.Outcome != patmat.Failure {
		t.Fatalf("outcome = %v, want Failure", res.Outcome)
	}
	if res.Span("abc") != "" {
		t.Fatalf("Span on failure = %q, want empty", res.Span("abc"))
	}
}

func TestMatchReplaceSubstitutesMatchedSpan(t *testing.T) {
	subject := "hello world"
	p := pattern.Str("world")
	res := patmat.MatchReplace(&subject, p, "there", patmat.Flags{})
	if res.Outcome != patmat.Success {
		t.Fatalf("outcome = %v, want Success", res.Outcome)
	}
	if subject != "hello there" {
		t.Fatalf("subject = %q, want %q", subject, "hello there")
	}
}

func TestMatchReplaceLeavesSubjectOnFailure(t *testing.T) {
	subject := "hello world"
	p := pattern.Str("xyz")
	res := patmat.MatchReplace(&subject, p, "there", patmat.Flags{})
	if res.Outcome != patmat.Failure {
		t.Fatalf("outcome = %v, want Failure", res.Outcome)
	}
	if subject != "hello world" {
		t.Fatalf("subject mutated on failure: %q", subject)
	}
}

func TestMatchAllPreservesInputOrder(t *testing.T) {
	p := pattern.Span(charset.Digit())
	subjects := []string{"a1", "b22", "c333", "nodigits"}

	results, err := patmat.MatchAll(context.Background(), subjects, p, patmat.Flags{})
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	want := []string{"1", "22", "333", ""}
	for i, w := range want {
		if results[i].Span(subjects[i]) != w {
			t.Fatalf("results[%d].Span = %q, want %q", i, results[i].Span(subjects[i]), w)
		}
	}
}

func TestMatchAllCancelledContext(t *testing.T) {
	p := pattern.Span(charset.Digit())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := patmat.MatchAll(ctx, []string{"1", "2", "3"}, p, patmat.Flags{})
	if err == nil {
		t.Fatalf("expected an error from a pre-cancelled context")
	}
}
