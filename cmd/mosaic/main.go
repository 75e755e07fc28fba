package main

import (
	"os"

	"github.com/mosaic-lang/mosaic/cmd/mosaic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
