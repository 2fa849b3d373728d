package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// defaultConfigFile is the file init writes when no path is given.
const defaultConfigFile = "puzzle.json"

func (c *CLI) initCommand() *cobra.Command {
	var (
		rows, cols int
		seed       int64
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a default puzzle config",
		Long: `Write a puzzle config with the built-in Standard Tab edge.

Without flags the puzzle is 15×15 with seed 12345, matching the browser tool's defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			cfg, err := grid.DefaultConfig().WithDimensions(rows, cols)
			if err != nil {
				return err
			}
			cfg = cfg.WithSeed(seed)
			if err := saveConfig(cfg, path); err != nil {
				return err
			}

			printSuccess("Created %s", path)
			printPuzzleStats(cfg.Rows, cfg.Columns, len(cfg.EdgeConfigs))
			printNextStep("Preview it", appName+" render "+path)
			printNextStep("Edit the edge shape", appName+" edit "+path)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", grid.DefaultRows, "number of rows")
	cmd.Flags().IntVar(&cols, "columns", grid.DefaultColumns, "number of columns")
	cmd.Flags().Int64Var(&seed, "seed", grid.DefaultSeed, "random seed")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
