package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/catalog"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		export  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [source]",
		Short: "List the artworks in a catalog",
		Long: `List the artworks in a catalog in presentation order.

With --export the catalog is written to stdout as json or toml instead,
which also converts between formats or snapshots a remote catalog.`,
		Example: `  exhibit catalog gallery.toml
  exhibit catalog mongodb://localhost:27017/gallery --export toml > gallery.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			var source string
			if len(args) == 1 {
				source = args[0]
			}

			cat, err := c.loadCatalog(cmd.Context(), cfg, source, noCache, refresh, export != "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if export != "" {
				data, err := cat.Encode(export)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			printCatalog(out, cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the catalog as json or toml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the catalog cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch remote catalogs")

	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	if len(cat.Artworks) == 0 {
		fmt.Fprintln(w, StyleDim.Render("Catalog is empty"))
		return
	}
	fmt.Fprintln(w, catalogTable(cat))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d artworks · %d critiques · %d personas",
		len(cat.Artworks), len(cat.Critiques), len(cat.Personas))))
}

// catalogTable renders one row per artwork with its critique count.
func catalogTable(cat *catalog.Catalog) string {
	counts := make(map[string]int, len(cat.Artworks))
	for _, cr := range cat.Critiques {
		counts[cr.ArtworkID]++
	}

	rows := make([][]string, 0, len(cat.Artworks))
	for i, a := range cat.Artworks {
		year := ""
		if a.Year != 0 {
			year = strconv.Itoa(a.Year)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), a.ID, a.Title, a.Artist, year, strconv.Itoa(counts[a.ID])})
	}
	return newTable([]string{"#", "ID", "Title", "Artist", "Year", "Critiques"}, rows, true).String()
}
