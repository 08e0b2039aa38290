/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keywire",
	Short: "keywire - key event wire codec tooling",
	Long: `keywire encodes and decodes key-event packets in the fixed-layout
binary wire format (7 little-endian 8-byte words plus a trailing UTF-8
character segment), and can journal packets for capture and replay.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global journal directory flag
	rootCmd.PersistentFlags().StringP("journal-dir", "j", "./journal", "Journal directory for captured events")
}
