package main

import (
	"os"

	"github.com/pcanas/mentat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
