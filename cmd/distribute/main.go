package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "distribute",
		Usage: "Distribución del stock de bodega entre sucursales",
		Commands: []*cli.Command{
			migrateCmd,
			seedCmd,
			runCmd,
			reportCmd,
			tokenCmd,
		},
	}
}
