// Package main is the entry point for the motorctl CLI client.
package main

import (
	"github.com/milestonemotors/motors/cmd/motorctl/cmd"
)

func main() {
	cmd.Execute()
}
