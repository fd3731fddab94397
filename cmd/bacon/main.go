// Command bacon is the CLI front end for managing sessions of Hog
// strategies: adding and inspecting them, running round-robin
// tournaments, training by coordinate ascent, and drawing their
// strategy diagrams.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
