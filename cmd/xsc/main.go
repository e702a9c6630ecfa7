package main

import (
	"os"

	"github.com/xs-lang/xs/cmd/xsc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
