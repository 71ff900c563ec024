package main

import (
	"os"

	"github.com/arthur-debert/compinst/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
