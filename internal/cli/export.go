package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/export"
	"github.com/matzehuels/jigsaw/pkg/observability"
)

type exportOpts struct {
	output     string
	dir        string
	unitSize   int
	margin     float64
	autoMargin bool
	workers    int
	rasterizer string
	image      string
	refresh    bool
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <config>",
		Short: "Export every piece as SVG and PNG with a manifest",
		Long: `Export the puzzle as individual piece assets.

Each piece is written as "R <row> C <col>.svg" and ".png" together with
PuzzleData.json describing export size, offsets and grid positions. By default the
assets are packed into PuzzleAssets_<seed>.zip; use --dir to write a directory.

Pieces whose PNG fails to rasterize keep their SVG and are listed as failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "zip archive path (default PuzzleAssets_<seed>.zip)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "write assets into a directory instead of a zip archive")
	cmd.Flags().IntVar(&opts.unitSize, "unit-size", 0, "pixel size of one grid cell (default from settings)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "margin around each cell as a fraction of the unit size (default from settings)")
	cmd.Flags().BoolVar(&opts.autoMargin, "auto-margin", false, "size the margin to fit the largest tab")
	cmd.Flags().IntVar(&opts.workers, "workers", -1, "parallel rasterizers (0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", "", "PNG rasterizer: canvas or rsvg")
	cmd.Flags().StringVar(&opts.image, "image", "", "texture image painted into each piece")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached PNGs")
	cmd.MarkFlagsMutuallyExclusive("output", "dir")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, flags exportOpts) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(input)
	if err != nil {
		return err
	}

	opts := c.settings.ExportOptions()
	opts.Refresh = flags.refresh
	if flags.unitSize != 0 {
		opts.UnitSize = flags.unitSize
	}
	if cmd.Flags().Changed("margin") {
		margin := flags.margin
		opts.Margin = &margin
	}
	if flags.autoMargin {
		opts.AutoMargin = true
	}
	if flags.workers >= 0 {
		opts.Workers = flags.workers
	}
	if flags.rasterizer != "" {
		opts.Rasterizer = flags.rasterizer
	}
	if flags.image != "" {
		if opts.Texture, opts.TextureKey, err = loadTexture(flags.image); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rasterizing pieces")
	prev := observability.Raster()
	observability.SetRasterHooks(newRasterProgress(spinner, cfg.Rows*cfg.Columns))
	defer observability.SetRasterHooks(prev)

	prog := newProgress(c.Logger)
	spinner.Start()
	res, err := runner.Export(ctx, cfg, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %d pieces", res.Manifest.TotalPieces))

	var dest string
	if flags.dir != "" {
		dest = flags.dir
		err = res.WriteDir(dest)
	} else {
		dest = flags.output
		if dest == "" {
			dest = export.ArchiveName(cfg.Seed)
		}
		err = res.WriteZipFile(dest)
	}
	if err != nil {
		return err
	}

	printSuccess("Exported %d pieces", res.Manifest.TotalPieces)
	printPuzzleStats(cfg.Rows, cfg.Columns, len(cfg.EdgeConfigs),
		fmt.Sprintf("%gpx", res.Manifest.ExportSize))
	printKeyValue("Puzzle", res.Manifest.PuzzleID)
	printFile(dest)
	for _, f := range res.Failures() {
		printWarning("%s: %s", f.SVGFile, f.Error)
	}
	return nil
}
