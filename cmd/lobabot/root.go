package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lobabot",
	Short: "Lobabot bridges WhatsApp conversations to a spreadsheet intake",
	Long:  `Lobabot receives WhatsApp Cloud API webhook events, walks users through the Loba service intake flows, and forwards completed submissions to a spreadsheet sink.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
