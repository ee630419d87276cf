// main is the entry point for the stride CLI.
package main

import (
	"fmt"
	"os"

	"github.com/flazor/stride/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
