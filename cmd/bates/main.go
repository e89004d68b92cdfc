package main

import (
	"os"

	"github.com/SkouffyBates/BatesTrading-Vision/cmd/bates/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
