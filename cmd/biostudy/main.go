// Command biostudy manages the clinical-study SQLite datastore.
package main

import (
	"os"

	"github.com/roach88/biostudy/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
