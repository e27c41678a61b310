package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"wtj-scraper/internal/domain"
	"wtj-scraper/internal/scrape/util"
	"wtj-scraper/internal/store"
)

const showCellWidth = 40

var showDB string

var showCmd = &cobra.Command{
	Use:   "show --db <path/to/companies.db>",
	Short: "Prints the companies stored by the last scrape's SQLite snapshot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Open would create an empty database otherwise.
		if _, err := os.Stat(showDB); err != nil {
			return fmt.Errorf("snapshot %s: %w", showDB, err)
		}

		db, err := store.Open(showDB)
		if err != nil {
			return err
		}
		defer db.Close()

		companies, err := store.ListCompanies(cmd.Context(), db.Pool)
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"#", "Name", "Location", "Website", "Sectors"})
		for i, c := range companies {
			t.AppendRow(table.Row{
				i,
				cell(domain.Deref(c.Name)),
				cell(domain.Deref(c.Location)),
				cell(domain.Deref(c.Website)),
				cell(util.JoinNonEmpty(c.Sectors, ", ")),
			})
		}
		t.SetCaption("%d companies", len(companies))
		t.Render()
		return nil
	},
}

func cell(s string) string {
	return util.Truncate(util.CleanText(s), showCellWidth)
}

func init() {
	showCmd.Flags().StringVar(&showDB, "db", "response/companies.db", "The SQLite snapshot to read.")
	rootCmd.AddCommand(showCmd)
}
