// Package main provides the dopler command.
package main

import (
	"os"

	"github.com/leapstack-labs/dopler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
