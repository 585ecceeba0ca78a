package main

import (
	"os"

	"thispc/internal/commands"
)

func main() {
	os.Exit(commands.Run(os.Args))
}
