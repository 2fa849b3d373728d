package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/core/grid"
)

func (c *CLI) validateCommand() *cobra.Command {
	var draws bool

	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a puzzle config and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				printError("%s is invalid", args[0])
				return err
			}
			g, err := grid.Generate(cfg)
			if err != nil {
				printError("%s cannot be generated", args[0])
				return err
			}

			printSuccess("%s is valid", args[0])
			printPuzzleStats(cfg.Rows, cfg.Columns, len(cfg.EdgeConfigs))
			printKeyValue("Seed", strconv.FormatInt(cfg.Seed, 10))
			if g.FellBack && len(cfg.SelectedEdgeIDs) > 0 {
				printWarning("selection matches no edge, all edges are used")
			}
			if len(cfg.EdgeConfigs) > 0 {
				printNewline()
				fmt.Println(edgeTable(cfg))
			}
			if draws {
				printNewline()
				for _, d := range g.Draws {
					printDetail("%s", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&draws, "draws", false, "list every random edge choice")
	return cmd
}
