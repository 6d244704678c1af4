// Command kb is a terminal client for the kanban board service.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
