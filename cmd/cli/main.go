// Package main is the entry point for the entractl binary.
package main

import (
	"os"

	"entractl/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
