package main

import (
	"fmt"

	"github.com/askarpov/farebot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of farebot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("farebot version %s\n", farebot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
