package main

import (
	"context"
	"time"

	"github.com/fieldfence/fieldfence/pkg/engine"
	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database supports violation classification",
	Long: `Connect to the configured database and report whether it can
support constraint classification: connectivity, server detection and
structured violation info.

Configuration comes from DATABASE_URL or .fieldfence.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
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

		if err := eng.Ping(ctx); err != nil {
			return err
		}
		printOK("connected to %s:%d/%s", cc.Host, cc.Port, cc.Database)

		intro := introspect.NewPostgres(eng.Connector().Pool())
		if ok, err := intro.Detect(ctx); !ok {
			printError("server did not answer as PostgreSQL: %v", err)
			return err
		}
		printOK("PostgreSQL server detected")

		if intro.SupportsViolationInfo() {
			printOK("structured violation info available - classification enabled")
		} else {
			printError("driver reports no structured violation info - classification disabled")
		}

		tables, err := intro.ListTables(ctx)
		if err != nil {
			return err
		}
		printInfo("%d user tables visible", len(tables))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
