package main

import (
	"os"

	"feedpost/commands"
)

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command line and exits non-zero on failure.
func RealMain() {
	if err := commands.Execute(os.Args[1:], os.Stdout); err != nil {
		exit(1)
	}
}
