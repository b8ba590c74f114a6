package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatvault",
		Short:   "Chatvault - convert chat-log exports into a container and browse them",
		Version: version,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(infoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
