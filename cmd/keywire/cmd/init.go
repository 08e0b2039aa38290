package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create the keywire configuration file. A random API key is
generated and written with the defaults; use it as X-API-Key against the
serve endpoints.

Example:
  keywire init
  keywire init --config ./keywire.yaml --journal-dir /var/lib/keywire/journal`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) {
			cmd.Printf("Config already exists at %s\n", configPath)
			return
		}

		journalDir, _ := cmd.Flags().GetString("journal-dir")

		cfg, err := config.BootstrapConfig(configPath, journalDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			return
		}

		cmd.Printf("Wrote %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", "Path to the configuration file")
}
