package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/libtour/libtour/cmd/libtour"
)

func main() {
	rootCmd := libtour.NewRootCmd()

	err := doc.GenMan(rootCmd, libtour.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
