package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// configCmd groups the configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mdpptx configuration",
	Long: `Configuration is layered: built-in defaults, the global file
(~/.config/mdpptx/config.toml), a project file (mdpptx.toml or mdpptx.yaml
in the input directory), MDPPTX_* environment variables including a
project .env file, and finally command line flags.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default global configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Print the effective configuration for a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configShowCmd.Flags().StringP("format", "f", "toml", "Output format: toml or yaml")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	svc := newConfigService(cmd, ports.NewNoOpLogger())
	path := svc.GlobalPath()

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := svc.CreateGlobalConfig(cmd.Context()); err != nil {
		return fmt.Errorf("creating global config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "toml":
		enc := toml.NewEncoder(out)
		enc.Indent = "  "
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
