package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verdant/internal/interfaces/cli/migrate"
	"verdant/internal/interfaces/cli/server"
	"verdant/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "verdant",
		Short: "Verdant - garden plan editor service",
		Long:  `Verdant is the garden plan editor backend: grid plans, cell types, plant placements, and the consistency rules between them.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
