package main

import (
	"os"

	"github.com/Ta1kunjms/gensanworks-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
