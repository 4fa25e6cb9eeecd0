package main

import (
	"os"

	"geoquiz/cmd/geoquiz/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
