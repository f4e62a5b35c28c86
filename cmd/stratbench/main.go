package main

import (
	"os"

	"github.com/stratbench/stratbench/cmd/stratbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
