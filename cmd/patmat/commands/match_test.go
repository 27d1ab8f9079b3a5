package commands_test

import (
	"testing"

	"github.com/hgweller/gopatmat/cmd/patmat/commands"
)

func TestMatchCommandRequiresTwoArgs(t *testing.T) {
	if err := commands.MatchCommand(nil); err == nil {
		t.Fatalf("expected an error with no arguments")
	}
	if err := commands.MatchCommand([]string{"digits"}); err == nil {
		t.Fatalf("expected an error with only one argument")
	}
}

func TestMatchCommandUnknownCatalogName(t *testing.T) {
	err := commands.MatchCommand([]string{"does-not-exist", "abc"})
	if err == nil {
		t.Fatalf("expected an error for an unknown catalog name")
	}
}

func TestMatchCommandSuccess(t *testing.T) {
	if err := commands.MatchCommand([]string{"digits", "42 apples"}); err != nil {
		t.Fatalf("MatchCommand: %v", err)
	}
}

func TestDumpCommandRequiresOneArg(t *testing.T) {
	if err := commands.DumpCommand(nil); err == nil {
		t.Fatalf("expected an error with no arguments")
	}
}

func TestDumpCommandUnknownCatalogName(t *testing.T) {
	if err := commands.DumpCommand([]string{"does-not-exist"}); err == nil {
		t.Fatalf("expected an error for an unknown catalog name")
	}
}

func TestBenchCommandRequiresTwoArgs(t *testing.T) {
	if err := commands.BenchCommand(nil); err == nil {
		t.Fatalf("expected an error with no arguments")
	}
}

func TestBenchCommandRunsSmallCount(t *testing.T) {
	if err := commands.BenchCommand([]string{"digits", "42 apples", "5"}); err != nil {
		t.Fatalf("BenchCommand: %v", err)
	}
}

func TestBenchCommandRejectsUnparsableCount(t *testing.T) {
	if err := commands.BenchCommand([]string{"digits", "42 apples", "not-a-number"}); err == nil {
		t.Fatalf("expected an error for an unparsable iteration count")
	}
}
