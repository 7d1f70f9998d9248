package main

import (
	"os"

	"github.com/realtoken/questline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
