package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) piecesCommand() *cobra.Command {
	var (
		output string
		size   float64
	)

	cmd := &cobra.Command{
		Use:   "pieces <config>",
		Short: "Print the compiled piece outlines as JSON",
		Long: `Print every piece outline as JSON: grid position, SVG path data, tight bounds and
the edge each side was drawn from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			if size == 0 {
				size = c.settings.Render.PieceSize
			}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			pieces, cached, err := runner.PiecesWithCacheInfo(cmd.Context(), cfg, size)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(pieces, "", "  ")
			if err != nil {
				return fmt.Errorf("encode pieces: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Compiled %d pieces", len(pieces.Pieces))
			printPuzzleStats(cfg.Rows, cfg.Columns, len(cfg.EdgeConfigs), cacheLabel(cached))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&size, "size", 0, "piece size (default from settings)")
	return cmd
}
