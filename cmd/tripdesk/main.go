package main

import (
	"os"

	"github.com/hyrosy/tripdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
