package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/cli/styles"
	"github.com/reklai/harpoon-telescope/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where harpoon keeps its files and print the effective configuration.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config, database and log locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, the config file and HARPOON_*
environment variables have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	if app.CreatedConfig != "" {
		fmt.Println(renderer.RenderCreated(app.CreatedConfig))
	}
	configFile := app.ConfigFile
	if configFile == "" {
		var err error
		if configFile, err = config.GetConfigFile(); err != nil {
			return err
		}
	}
	fmt.Println(renderer.RenderPaths(configFile, app.Config.Database.Path, app.Config.Logging.LogDir))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	enc := toml.NewEncoder(os.Stdout)
	enc.SetIndentTables(true)
	return enc.Encode(app.Config)
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
