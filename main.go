// main is the entry point for the forgepulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/forgepulse/forgepulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
