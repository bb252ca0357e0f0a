package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		games := registry.List()

		width := 2
		for _, g := range games {
			width = max(width, len(g.ID))
		}

		fmt.Printf("  %-*s  %-14s  %s\n", width, "ID", "Title", "Description")
		fmt.Printf("  %-*s  %-14s  %s\n", width, "--", "-----", "-----------")
		for _, g := range games {
			fmt.Printf("  %-*s  %-14s  %s\n", width, g.ID, g.Title, g.Description)
		}
	},
}
