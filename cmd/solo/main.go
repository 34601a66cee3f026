// Command solo runs the single-player inspection shell.
package main

import (
	"fmt"
	"os"

	"github.com/shogihack/naitou/shell"
)

func main() {
	if err := shell.New().Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
