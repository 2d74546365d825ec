package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "go-symfony — container console",
	Long:  "Inspection commands for the compiled service container, in the spirit of Symfony's bin/console.",
}

func init() {
	rootCmd.AddCommand(debugContainerCmd)
	rootCmd.AddCommand(debugParametersCmd)
}
