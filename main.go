package main

import (
	"os"

	"github.com/simonbystrom/teampulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
