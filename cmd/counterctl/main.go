package main

import (
	"os"

	"github.com/spetersoncode/statekit/cmd/counterctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
