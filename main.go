package main

import (
	"os"

	"github.com/msalah0e/cxgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
