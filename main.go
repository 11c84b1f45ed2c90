package main

import (
	"os"

	"github.com/sdendorfer/nasbudget/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
