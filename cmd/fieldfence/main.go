package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fieldfence",
	Short: "Constraint-aware validation for PostgreSQL writes",
	Long: `FieldFence turns PostgreSQL constraint violations into per-field
validation errors, using constraint metadata cached per table.

The CLI inspects what the library would cache and checks that a
database can support classification at all.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	c := color.New(color.FgCyan)
	c.Printf("info: ")
	fmt.Printf(format+"\n", args...)
}

func printOK(format string, args ...interface{}) {
	c := color.New(color.FgGreen, color.Bold)
	c.Printf("ok: ")
	fmt.Printf(format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	c := color.New(color.FgRed, color.Bold)
	c.Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
