// @MX:ANCHOR: [AUTO] main is the only entry point of the nestforge binary; any error exits 1.
// @MX:REASON: [AUTO] exit codes are part of the CLI contract used by scripts running --non-interactive
package main

import (
	"os"

	"github.com/modu-ai/nestforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
