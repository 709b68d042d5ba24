package main

import (
	"os"

	"github.com/goliatone/go-lvglgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
