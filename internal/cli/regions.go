package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/layout"
)

// regionsCommand creates the regions command.
func (c *CLI) regionsCommand() *cobra.Command {
	var (
		width  float64
		height float64
		hit    string
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Show region bounds for a viewport",
		Long: `Show the configured regions in declaration order with their pixel bounds.

Declaration order is both the hit-test priority and the autoplay cycle.
Use --hit to check which region a point falls in.`,
		Example: `  exhibit regions --width 1280 --height 720
  exhibit regions --hit 100,50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if width > 0 {
				cfg.Viewport.Width = width
			}
			if height > 0 {
				cfg.Viewport.Height = height
			}

			l, err := layout.New(cfg.Viewport.Width, cfg.Viewport.Height, cfg.RegionDefs())
			if err != nil {
				return err
			}
			defer l.Destroy()

			printRegions(cmd.OutOrStdout(), l)

			if hit == "" {
				return nil
			}
			x, y, err := parsePoint(hit)
			if err != nil {
				return err
			}
			if id, ok := l.HitTest(x, y); ok {
				printKeyValue("hit", id)
			} else {
				printInfo("(%g, %g) is outside every region", x, y)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "viewport width (default from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "viewport height (default from config)")
	cmd.Flags().StringVar(&hit, "hit", "", "hit-test the point x,y")

	return cmd
}

func printRegions(w io.Writer, l *layout.Layout) {
	vw, vh := l.Viewport()
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Viewport %gx%g", vw, vh)))
	fmt.Fprintln(w, regionsTable(l.Regions()))
}

func regionsTable(regions []layout.Region) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	rows := make([][]string, 0, len(regions))
	for i, r := range regions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.ID,
			fmt.Sprintf("%s,%s %sx%s", format(r.Fraction.X), format(r.Fraction.Y), format(r.Fraction.W), format(r.Fraction.H)),
			fmt.Sprintf("%s,%s %sx%s", format(r.Bounds.X), format(r.Bounds.Y), format(r.Bounds.W), format(r.Bounds.H)),
		})
	}
	return newTable([]string{"#", "ID", "Fraction", "Bounds"}, rows, true).String()
}

// parsePoint parses "x,y".
func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidArgument, "point %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidArgument, err, "point %q", s)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidArgument, err, "point %q", s)
	}
	return x, y, nil
}
