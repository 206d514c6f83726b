// EEMKey - fluorescence inner-filter correction tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/EEMKey/cmd/eemkey/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
