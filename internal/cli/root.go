package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/buildinfo"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/settings"
)

// annotationNoSettings marks commands that run without an existing --config file.
const annotationNoSettings = "jigsaw/no-settings"

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Jigsaw generates seeded jigsaw puzzle geometry",
		Long: `Jigsaw turns a puzzle config (grid size, seed and a library of Bézier edge shapes)
into interlocking piece outlines, previews and a per-piece asset archive.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(c.settingsPath)
			if err != nil {
				if !errors.Is(err, errors.ErrCodeNotFound) || cmd.Annotations[annotationNoSettings] == "" {
					return err
				}
				s = settings.Default()
			}
			c.settings = s
			c.Logger.Debug("settings loaded", "path", c.settingsPath, "cache", s.Cache.Backend)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/jigsaw/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.piecesCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.edgeCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
