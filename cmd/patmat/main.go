// cmd/patmat/main.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hgweller/gopatmat/cmd/patmat/commands"
	"github.com/hgweller/gopatmat/internal/catalog"
)

const version = "1.0.0"

// Build variables, injected at build time via:
//
//	go build -ldflags "-X main.buildDate=2026-07-30 -X main.gitCommit=abc1234"
//
// buildDate stays "unknown" when the linker never sets it; showVersion
// replaces gitCommit with `git rev-parse --short HEAD` output whenever
// that command succeeds.
var (
	buildDate = "unknown"
	gitCommit = "unknown"
)

// commandAliases lets each subcommand be invoked by a short flag.
var commandAliases = map[string]string{
	"m": "match",
	"i": "repl",
	"d": "dump",
	"s": "serve",
	"b": "bench",
	"v": "version",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
		args[0] = alias
	}

	if cmd == "--help" || cmd == "-h" || cmd == "help" {
		showUsage()
		return
	}
	if cmd == "--version" || cmd == "-v" || cmd == "version" {
		showVersion()
		return
	}

	var err error
	switch cmd {
	case "match":
		err = commands.MatchCommand(args[1:])
	case "repl":
		err = commands.ReplCommand(args[1:])
	case "dump":
		err = commands.DumpCommand(args[1:])
	case "serve":
		err = commands.ServeCommand(args[1:])
	case "bench":
		err = commands.BenchCommand(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "patmat: unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "patmat: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("patmat - a SNOBOL4/SPITBOL-style pattern matcher")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  patmat match <catalog-name> <subject>   Build and run a match   (alias: m)")
	fmt.Println("  patmat repl                             Interactive pattern try (alias: i)")
	fmt.Println("  patmat dump <catalog-name>               Print the node table     (alias: d)")
	fmt.Println("  patmat serve [addr]                      Live trace viewer        (alias: s)")
	fmt.Println("  patmat bench <catalog-name> <subject> [n]  Repeat a match N times (alias: b)")
	fmt.Println("  patmat version                           Print build metadata     (alias: v)")
	fmt.Println()
	fmt.Println("<catalog-name> selects one of the built-in patterns (see internal/catalog):")
	for _, name := range catalog.Names() {
		fmt.Printf("  %s\n", name)
	}
}

func showVersion() {
	fmt.Printf("patmat %s\n", version)
	fmt.Printf("Build Date:  %s\n", buildDate)

	if out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
		gitCommit = strings.TrimSpace(string(out))
	}
	if gitCommit != "unknown" {
		fmt.Printf("Git Commit:  %s\n", gitCommit)
	}
}
