// Command vantage inspects, validates, and replays simulation view
// projections.
package main

import (
	"fmt"
	"os"

	"github.com/vantage-sim/vantage/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
