package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yanmxa/lumina/internal/style"
)

var stylesJSON bool

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available design styles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(settings)
		if err != nil {
			return err
		}
		if stylesJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.Styles())
		}
		printStyles(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func init() {
	stylesCmd.Flags().BoolVar(&stylesJSON, "json", false, "Print the catalog as JSON")
}

func printStyles(w io.Writer, catalog *style.Catalog) {
	width := 0
	for _, name := range catalog.Names() {
		width = max(width, runewidth.StringWidth(name))
	}
	for _, s := range catalog.Styles() {
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(s.Name, width), s.Description)
	}
}
