package main

import (
	"os"

	"github.com/aezell/branchkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
