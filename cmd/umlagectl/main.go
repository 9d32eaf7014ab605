// umlagectl runs the invoice pipeline from the command line.
//
// Usage:
//
//	umlagectl process [--format json|csv|xlsx] [--output FILE] invoice.pdf...
//	umlagectl match "Musterstraße 1, Berlin"
//	umlagectl categories
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "umlagectl",
		Usage:   "Process operating-cost invoices and inspect the building directory",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"UMLAGE_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			processCommand(),
			matchCommand(),
			categoriesCommand(),
		},
	}
}
