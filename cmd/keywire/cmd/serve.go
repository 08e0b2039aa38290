package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/api"
	"github.com/skarsten/keywire/pkg/config"
	"github.com/skarsten/keywire/pkg/journal"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inspection HTTP server",
	Long: `Start the keywire HTTP server exposing packet encode/decode and
journal endpoints, plus Prometheus metrics on /metrics.

Examples:
  keywire serve --api-key=mysecretkey --port=8090
  keywire serve --config ~/.config/keywire/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				cmd.Printf("Error loading config: %v\n", err)
				return
			}
			cfg = loaded
		}

		// Flags override config values.
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("journal-dir") {
			cfg.JournalDir, _ = cmd.Flags().GetString("journal-dir")
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			cmd.Println("Error: no API key configured (pass --api-key or run 'keywire init' first)")
			return
		}

		j, err := journal.Open(cfg.JournalDir)
		if err != nil {
			cmd.Printf("Error opening journal: %v\n", err)
			return
		}
		defer j.Close()

		serverConfig := api.ServerConfig{
			Bind:       cfg.Bind,
			Port:       cfg.Port,
			APIKey:     cfg.Security.APIKey,
			JournalDir: cfg.JournalDir,
		}

		if err := api.StartServer(j, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8090, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	serveCmd.Flags().String("config", "", "Path to the configuration file")
}
