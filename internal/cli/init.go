package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/config"
)

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var (
		source string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write a config file with the default 2x2 region grid and autoplay timing.

Edit the [[regions]] entries to change the layout; their order is the
autoplay cycle.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			cfg := config.Default()
			cfg.Catalog.Source = source
			if err := cfg.Write(path, force); err != nil {
				return err
			}

			printSuccess("Created config")
			printFile(path)
			if source == "" {
				printWarning("No catalog source recorded")
				printNextStep("Set [catalog] source, then run", "exhibit run")
			} else {
				printNextStep("Start the exhibit", "exhibit run")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "catalog", "", "catalog source to record in the config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
