// hdur parses, formats, and validates composite human-readable durations.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/hdur/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
