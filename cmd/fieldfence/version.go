package main

import (
	"fmt"

	"github.com/fieldfence/fieldfence/pkg/engine"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show FieldFence version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FieldFence v%s\n", engine.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
