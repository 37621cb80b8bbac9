package main

import (
	"os"

	"github.com/cjbarker/trivia-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
