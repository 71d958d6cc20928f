package main

import (
	"os"

	"github.com/sakchai-01/school-pos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
