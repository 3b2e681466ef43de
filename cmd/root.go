package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oraschemagen",
	Short: "Generate realistic Oracle schema exports without a database",
	Long: `oraschemagen synthesizes Oracle export artifacts as plain text:
tables, constraints, sequences, indexes, sample data, triggers,
procedures, functions, packages and LOB utilities. No database
connection is ever made.

Examples:

  oraschemagen generate
  oraschemagen generate --single-file --encoding shift_jis
  oraschemagen kinds
  oraschemagen tables
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(tablesCmd)
}
