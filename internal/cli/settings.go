package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/settings"
)

func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or create the settings file",
		Long: `Settings are read from a TOML file, by default
$XDG_CONFIG_HOME/jigsaw/config.toml (override with --config). Flags given on the
command line take precedence over the file.`,
	}
	cmd.AddCommand(c.settingsPathCommand(), c.settingsShowCommand(), c.settingsInitCommand())
	return cmd
}

// settingsFile returns the file named by --config or the default location.
func (c *CLI) settingsFile() (string, error) {
	if c.settingsPath != "" {
		return c.settingsPath, nil
	}
	return settings.DefaultPath()
}

func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the settings file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoSettings: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.settingsFile()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.settings.Encode(os.Stdout)
		},
	}
}

func (c *CLI) settingsInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a settings file with the defaults",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoSettings: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.settingsFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := settings.Default().Write(path); err != nil {
				return err
			}
			printSuccess("Wrote default settings")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
