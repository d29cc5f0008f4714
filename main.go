package main

import (
	"os"

	"github.com/srazzak/tutorsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
