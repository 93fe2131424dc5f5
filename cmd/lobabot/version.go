package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	lobabot "github.com/lobalabs/lobabot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lobabot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lobabot version %s\n", strings.TrimSpace(lobabot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
