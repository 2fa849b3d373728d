package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

func (c *CLI) edgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Edit the edge library of a puzzle config",
		Long: `Edit the edge library of a puzzle config from the command line.

Every subcommand takes the config file as its first argument and rewrites it in
place. Coordinates are in edge units: the edge runs from (0,0) to (1,0) and
negative y points up. Point indices start at 0.`,
	}

	cmd.AddCommand(
		c.edgeListCommand(),
		c.edgeAddCommand(),
		c.edgeRemoveCommand(),
		c.edgeRenameCommand(),
		c.edgeMoveCommand(),
		c.edgeHandleCommand(),
		c.edgeSmoothCommand(),
		c.edgeModeCommand(),
		c.edgeInsertCommand(),
		c.edgeDeleteCommand(),
		c.edgeSelectCommand(),
	)
	return cmd
}

// editConfig loads path, applies fn and saves the result.
func editConfig(path string, fn func(grid.Config) (grid.Config, error)) (grid.Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}
	cfg, err = fn(cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, saveConfig(cfg, path)
}

// editEdge applies fn to one edge of the config at path.
func editEdge(path, id string, fn func(edge.Edge) (edge.Edge, error)) (edge.Edge, error) {
	var out edge.Edge
	_, err := editConfig(path, func(cfg grid.Config) (grid.Config, error) {
		e, _, ok := cfg.Edge(id)
		if !ok {
			return cfg, errors.New(errors.ErrCodeEdgeNotFound, "edge %q not found", id)
		}
		e, err := fn(e)
		if err != nil {
			return cfg, err
		}
		out = e
		return cfg.WithEdge(e)
	})
	return out, err
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid point index %q", s)
	}
	return i, nil
}

func parseVec(xs, ys string) (bezier.Vector2, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return bezier.Vector2{}, errors.New(errors.ErrCodeInvalidInput, "invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return bezier.Vector2{}, errors.New(errors.ErrCodeInvalidInput, "invalid y %q", ys)
	}
	return bezier.Vec(x, y), nil
}

func parseSide(s string) (bezier.Side, error) {
	switch s {
	case "left", "l", "in":
		return bezier.SideLeft, nil
	case "right", "r", "out":
		return bezier.SideRight, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid handle side %q (must be left or right)", s)
	}
}

// nextEdgeID returns the first free id of the form edge-N.
func nextEdgeID(cfg grid.Config) string {
	for n := len(cfg.EdgeConfigs) + 1; ; n++ {
		id := "edge-" + strconv.Itoa(n)
		if _, _, ok := cfg.Edge(id); !ok {
			return id
		}
	}
}

func printEdge(e edge.Edge) {
	printSuccess("%s %s", StyleValue.Render(e.ID), StyleDim.Render(e.Name))
	for i, p := range e.Points {
		printDetail("%d  %-10s (%s, %s)  in %v  out %v", i, p.Mode(),
			edge.FormatFloat(p.Position.X), edge.FormatFloat(p.Position.Y), p.Left(), p.Right())
	}
}

func (c *CLI) edgeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <config>",
		Short: "List the edge library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Println(edgeTable(cfg))
			return nil
		},
	}
}

func (c *CLI) edgeAddCommand() *cobra.Command {
	var name, from string
	cmd := &cobra.Command{
		Use:   "add <config> [id]",
		Short: "Add an edge (straight, or copied from --from) and select it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added edge.Edge
			_, err := editConfig(args[0], func(cfg grid.Config) (grid.Config, error) {
				e := edge.Straight()
				if from != "" {
					src, _, ok := cfg.Edge(from)
					if !ok {
						return cfg, errors.New(errors.ErrCodeEdgeNotFound, "edge %q not found", from)
					}
					e = src.Clone()
					e.Name = src.Name + " copy"
				}
				e.ID = nextEdgeID(cfg)
				if len(args) == 2 {
					e.ID = args[1]
				}
				if name != "" {
					e.Name = name
				}
				added = e
				return cfg.AddEdge(e)
			})
			if err != nil {
				return err
			}
			printEdge(added)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&from, "from", "", "copy the points of an existing edge")
	return cmd
}

func (c *CLI) edgeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <config> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an edge from the library",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := editConfig(args[0], func(cfg grid.Config) (grid.Config, error) {
				return cfg.RemoveEdge(args[1])
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %s", args[1])
			if len(cfg.EdgeConfigs) == 0 {
				printWarning("The library is empty; puzzles with more than one piece cannot be generated")
			}
			return nil
		},
	}
}

func (c *CLI) edgeRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <config> <id> <name>",
		Short: "Change the display name of an edge",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := editConfig(args[0], func(cfg grid.Config) (grid.Config, error) {
				return cfg.RenameEdge(args[1], args[2])
			}); err != nil {
				return err
			}
			printSuccess("Renamed %s to %q", args[1], args[2])
			return nil
		},
	}
}

func (c *CLI) edgeMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <config> <id> <point> <x> <y>",
		Short: "Move an anchor; endpoints keep their x",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			pos, err := parseVec(args[3], args[4])
			if err != nil {
				return err
			}
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				return e.MovePoint(i, pos)
			})
			if err != nil {
				return err
			}
			printEdge(e)
			return nil
		},
	}
}

func (c *CLI) edgeHandleCommand() *cobra.Command {
	var absolute bool
	cmd := &cobra.Command{
		Use:   "handle <config> <id> <point> <left|right> <dx> <dy>",
		Short: "Set a control handle as an offset from its anchor",
		Long: `Set a control handle of an anchor. The value is an offset from the anchor, or an
absolute position with --absolute. Continuous anchors mirror the other handle.`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			side, err := parseSide(args[3])
			if err != nil {
				return err
			}
			v, err := parseVec(args[4], args[5])
			if err != nil {
				return err
			}
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				if absolute {
					return e.MoveHandleTo(i, side, v)
				}
				return e.SetHandle(i, side, v)
			})
			if err != nil {
				return err
			}
			printEdge(e)
			return nil
		},
	}
	cmd.Flags().BoolVar(&absolute, "absolute", false, "treat the value as an absolute position")
	return cmd
}

func (c *CLI) edgeSmoothCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "smooth <config> <id> <point>",
		Short: "Make an anchor continuous with averaged handles",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				return e.Smooth(i)
			})
			if err != nil {
				return err
			}
			printEdge(e)
			return nil
		},
	}
}

func (c *CLI) edgeModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <config> <id> <point> [Free|Continuous]",
		Short: "Set or toggle the handle mode of an anchor",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			var mode bezier.Mode
			if len(args) == 4 {
				if mode, err = bezier.ParseMode(args[3]); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "mode")
				}
			}
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				if mode == "" {
					return e.ToggleMode(i)
				}
				return e.SetMode(i, mode)
			})
			if err != nil {
				return err
			}
			printEdge(e)
			return nil
		},
	}
}

func (c *CLI) edgeInsertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <config> <id> <x> <y>",
		Short: "Insert a continuous anchor",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseVec(args[2], args[3])
			if err != nil {
				return err
			}
			var idx int
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				out, i, err := e.InsertPoint(pos)
				idx = i
				return out, err
			})
			if err != nil {
				return err
			}
			printInfo("Inserted point %d", idx)
			printEdge(e)
			return nil
		},
	}
}

func (c *CLI) edgeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <config> <id> <point>",
		Short: "Delete an interior anchor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			e, err := editEdge(args[0], args[1], func(e edge.Edge) (edge.Edge, error) {
				return e.DeletePoint(i)
			})
			if err != nil {
				return err
			}
			printEdge(e)
			return nil
		},
	}
}

func (c *CLI) edgeSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <config> [id...]",
		Short: "Choose which edges the generator draws from",
		Long: `Replace the selection with the given edge ids. With no ids the selection is
cleared and every edge in the library is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := editConfig(args[0], func(cfg grid.Config) (grid.Config, error) {
				if len(args) == 1 {
					out := cfg.Clone()
					out.SelectedEdgeIDs = nil
					return out, nil
				}
				return cfg.WithSelection(args[1:]...)
			})
			if err != nil {
				return err
			}
			fmt.Println(edgeTable(cfg))
			return nil
		},
	}
}
