// Package main is the entry point for the motors server.
package main

import (
	"os"

	"github.com/milestonemotors/motors/cmd/motors/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
