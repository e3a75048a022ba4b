// Package main provides the goldensearch CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/goldensearch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
