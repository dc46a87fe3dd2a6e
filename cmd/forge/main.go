// Package main is the entry point for the forge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/forgekit/cli/internal/cmd"
	ferrors "github.com/forgekit/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ferrors.ExitCodeFromError(err))
	}
}
