package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigInitCmd creates the config init command. It writes the defaults to
// the global config file, or to --path.
func NewConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file with default values. The file is written to
$VLIST_HOME/config.yaml (or the vlist directory under the user config dir)
unless --path is given. A path ending in .toml writes TOML.`,
		Example: `  # Create the global configuration
  vlist config init

  # Create a TOML configuration, overwriting an existing file
  vlist config init --path ~/.config/vlist/config.toml --force

  # Create a project overlay in the current directory
  vlist config init --path .vlist.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&path, "path", "", "file to write (default global config file)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, config.FileNameYAML)
	}

	if err := config.Save(config.New(), path, force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info().Str("path", path).Msg("configuration initialized")
	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after files and environment are applied.
func NewConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  vlist config show
  vlist config show --format toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := "config.yaml"
			switch format {
			case "yaml", "yml":
			case "toml":
				target = "config.toml"
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}

			data, err := config.Encode(stateFrom(cmd.Context()).cfg, target)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")

	return cmd
}
