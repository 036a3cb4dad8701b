// Package main is the entry point for the lapis CLI tool.
package main

import (
	"os"

	"github.com/dmdesousa/lapis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
