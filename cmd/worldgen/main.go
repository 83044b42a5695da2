// Package main is the worldgen command line tool. It prints generated
// rooms, settlements and dungeon floors for any coordinate.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
