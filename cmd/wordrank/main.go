// Package main provides the entry point for the wordrank CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/wordrank/cmd/wordrank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
