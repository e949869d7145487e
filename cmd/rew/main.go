// Command rew rewrites text records using patterns of constants and
// commands. See internal/cli for the subcommand and flag definitions.
package main

import (
	"os"

	"github.com/jpikl/mmvv/internal/cli"
)

func main() {
	app := cli.NewApp()
	os.Exit(app.Run(os.Args[1:]))
}
