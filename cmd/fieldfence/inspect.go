package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fieldfence/fieldfence/pkg/engine"
	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <table> [table...]",
	Short: "Show the constraint snapshot a binding would cache",
	Long: `Introspect one or more tables and print the constraint metadata the
library would cache for them: CHECK constraints, unique indexes and foreign
keys in both directions.

Examples:
  fieldfence inspect users
  fieldfence inspect public.users billing.invoices`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cc, _, err := LoadProjectConfig()
		if err != nil {
			return err
		}

		eng := engine.NewEngine()
		if err := eng.Connect(ctx, cc); err != nil {
			return err
		}
		defer eng.Close()

		intro := introspect.NewPostgres(eng.Connector().Pool())

		for _, table := range args {
			meta, err := intro.TableConstraints(ctx, table)
			if err != nil {
				return err
			}
			if meta == nil {
				printError("%s does not resolve to a plain table - nothing to cache", table)
				continue
			}
			printSnapshot(meta)
		}

		return nil
	},
}

func printSnapshot(meta *introspect.TableConstraints) {
	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.Bold)

	header.Printf("%s.%s\n", meta.Schema, meta.Table)

	section.Println("  checks:")
	printConstraintMap(meta.Checks)

	section.Println("  unique indexes:")
	printConstraintMap(meta.UniqueIndexes)

	section.Println("  foreign keys:")
	printConstraintMap(meta.ForeignKeys)

	section.Println("  referenced by:")
	if len(meta.ReferencedBy) == 0 {
		fmt.Println("    (none)")
	}
	for key, columns := range meta.ReferencedBy {
		fmt.Printf("    %s.%s %s -> (%s)\n",
			key.Schema, key.Table, key.Constraint, strings.Join(columns, ", "))
	}
	fmt.Println()
}

func printConstraintMap(m map[string][]string) {
	if len(m) == 0 {
		fmt.Println("    (none)")
		return
	}
	for _, name := range introspect.SortedNames(m) {
		fmt.Printf("    %s (%s)\n", name, strings.Join(m[name], ", "))
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
