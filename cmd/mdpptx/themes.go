package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/theme"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// themesCmd represents the themes command
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available templates",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE FONT\tBODY FONT\tDESCRIPTION")

	for _, t := range theme.NewResolver().List() {
		name := t.ID.String()
		if name == entities.DefaultThemeName {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, t.TitleFont, t.FontFamily, t.Description)
	}

	return tw.Flush()
}
