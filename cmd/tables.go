package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/njclarkbmf/oraschemagen/schema"
)

var tablesSchemaFile string

func init() {
	tablesCmd.Flags().StringVarP(&tablesSchemaFile, "schema-file", "f", "", "YAML table definitions to inspect instead of the built-in catalog")
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show the tables that would be generated, in emission order",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			tables []schema.Table
			err    error
		)
		if tablesSchemaFile != "" {
			tables, err = schema.LoadTables(tablesSchemaFile, "HR")
		} else {
			tables, err = schema.Sort(schema.Catalog("HR"))
		}
		if err != nil {
			color.Red("❌ Loading tables: %v", err)
			return
		}

		for i, t := range tables {
			fmt.Printf("%d. %s (%d columns", i+1, t.Name, len(t.Columns))
			if len(t.ForeignKeys) > 0 {
				var refs []string
				for _, fk := range t.ForeignKeys {
					refs = append(refs, fk.ReferencesTable)
				}
				fmt.Printf(", references %s", strings.Join(refs, ", "))
			}
			fmt.Println(")")
		}
	},
}
