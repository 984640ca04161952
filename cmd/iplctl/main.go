// iplctl runs the IPL dashboard views from the terminal.
package main

import (
	"os"

	"github.com/preston-bernstein/ipl-stats-service/cmd/iplctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
