package commands

import (
	"fmt"

	"github.com/hgweller/gopatmat/internal/catalog"
	"github.com/hgweller/gopatmat/internal/dump"
)

// DumpCommand prints the node table and reconstructed expression for
// a catalog pattern.
func DumpCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: patmat dump <catalog-name>")
	}
	entry, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	root := entry.Build().Root()

	fmt.Print(dump.Table(root))
	fmt.Println()
	fmt.Println("expression:")
	fmt.Println(dump.Expr(root))
	return nil
}
