package main

import (
	"os"

	"github.com/colorhymn/colorhymn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
