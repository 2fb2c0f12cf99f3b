package main

import (
	"os"

	"github.com/anirudh/quizdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
