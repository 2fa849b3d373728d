package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file (single format) or base path
	typ       string  // puzzle, edge or adjacency
	formats   string  // comma-separated formats
	edgeID    string  // edge to draw for --type edge
	pieceSize float64 // preview cell size
	labels    bool    // label adjacency edges
	image     string  // texture for the puzzle preview
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <config>",
		Short: "Render a puzzle, edge or adjacency preview",
		Long: `Render a preview of a puzzle config.

Types:
  puzzle     every piece outline on one sheet (svg, png, pdf)
  edge       one edge in the editor view with anchors and handles (svg, png, pdf)
  adjacency  the piece neighbour graph via Graphviz (dot, svg, png, pdf)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format, - for stdout) or base path")
	cmd.Flags().StringVarP(&opts.typ, "type", "t", pipeline.TypePuzzle, "preview type: puzzle, edge, adjacency")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.edgeID, "edge", "", "edge id for --type edge (default: first available)")
	cmd.Flags().Float64Var(&opts.pieceSize, "piece-size", 0, "piece size in pixels (default from settings)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label adjacency edges with their edge id")
	cmd.Flags().StringVar(&opts.image, "image", "", "texture image for the puzzle preview")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, flags renderOpts) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(input)
	if err != nil {
		return err
	}

	opts := c.settings.RenderOptions()
	opts.Type = flags.typ
	opts.Formats = pipeline.ParseFormats(flags.formats)
	opts.EdgeID = flags.edgeID
	opts.Labels = flags.labels
	if flags.pieceSize != 0 {
		opts.PieceSize = flags.pieceSize
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

	prog := newProgress(c.Logger)
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + opts.Type)

	paths, err := writeArtifacts(ctx, artifacts, opts.Formats, flags.output, input, opts.Type)
	if err != nil {
		return err
	}
	if flags.output == "-" {
		return nil
	}
	printSuccess("Rendered %s preview", opts.Type)
	printPuzzleStats(cfg.Rows, cfg.Columns, len(cfg.EdgeConfigs), cacheLabel(cached))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths written. A single
// format goes to output as given; several formats share a base path. Puzzle previews
// are named after the input, other types get a suffix.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, output, input, typ string) ([]string, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format")
		}
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	base := basePath(output, input)
	if output == "" && typ != pipeline.TypePuzzle {
		base += "_" + typ
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output, or derives the base from
// the input file when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// loadTexture reads an image file and returns it with a content hash usable as a
// cache key.
func loadTexture(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeNotFound, err, "texture %s", path)
		}
		return nil, "", fmt.Errorf("read texture: %w", err)
	}
	img, err := sink.DecodeTexture(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return img, cache.Hash(data), nil
}
