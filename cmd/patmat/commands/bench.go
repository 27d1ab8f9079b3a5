package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	patmat "github.com/hgweller/gopatmat"
	"github.com/hgweller/gopatmat/internal/catalog"
	"github.com/hgweller/gopatmat/internal/config"
)

// BenchCommand runs a catalog pattern against subject n times
// (default 10,000) and reports throughput, the crude microbenchmark
// asks for alongside the dump tooling.
func BenchCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: patmat bench <catalog-name> <subject> [n]")
	}
	name, subject := args[0], args[1]
	n := 10000
	if len(args) >= 3 {
		parsed, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bench: invalid iteration count %q: %w", args[2], err)
		}
		n = parsed
	}

	entry, err := catalog.Lookup(name)
	if err != nil {
		return err
	}

	cfg := config.Load()
	flags := patmat.Flags{InitialStackSize: cfg.StackSize}

	start := time.Now()
	var successes int
	for i := 0; i < n; i++ {
		res := patmat.Match(subject, entry.Build(), flags)
		if res.Outcome == patmat.Success {
			successes++
		}
	}
	elapsed := time.Since(start)

	perSec := float64(n) / elapsed.Seconds()
	fmt.Printf("%s runs of %q against %q: %s successes, %s in %s (%s/sec)\n",
		humanize.Comma(int64(n)), name, subject,
		humanize.Comma(int64(successes)),
		humanize.Comma(int64(n)), elapsed.Round(time.Microsecond),
		humanize.Comma(int64(perSec)))
	return nil
}
