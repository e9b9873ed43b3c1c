package main

import (
	"os"

	"github.com/kokeshes/wxk-check/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
