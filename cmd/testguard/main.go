package main

import (
	"os"

	"github.com/abdidvp/testguard/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
