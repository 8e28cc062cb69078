package main

import (
	"os"

	"github.com/eshaffer321/orderparser/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
