package commands

import (
	"fmt"
	"os"

	"github.com/hgweller/gopatmat/internal/config"
	"github.com/hgweller/gopatmat/internal/repl"
	"github.com/hgweller/gopatmat/internal/store"
)

// ReplCommand opens the configured pattern store
// and starts an interactive session over stdin/stdout.
func ReplCommand(args []string) error {
	cfg := config.Load()

	db, err := store.Open(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("repl: opening pattern store: %w", err)
	}
	defer db.Close()

	repl.New(os.Stdin, os.Stdout, db).Run()
	return nil
}
