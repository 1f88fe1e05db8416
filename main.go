// Package main is the entry point for the airtrace 802.11 capture tool.
package main

import (
	"fmt"
	"os"

	"github.com/airtrace/airtrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
