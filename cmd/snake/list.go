package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every snake variant with its rules.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, v := range variants {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, v.Description)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a variant.")
}

// completeVariants offers registered variant IDs for shell completion.
func completeVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.IDs(), cobra.ShellCompDirectiveNoFileComp
}

func unknownVariant(id string) error {
	return fmt.Errorf("unknown variant %q (available: %s)", id, strings.Join(registry.IDs(), ", "))
}
