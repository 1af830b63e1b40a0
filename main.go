package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/arcanaland/algodb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
