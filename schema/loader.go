package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name       string       `yaml:"name"`
	PrimaryKey []string     `yaml:"primary_key"`
	Columns    []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	NotNull    bool            `yaml:"not_null"`
	Unique     bool            `yaml:"unique"`
	References *yamlForeignKey `yaml:"references"`
}

type yamlForeignKey struct {
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

// LoadTables reads user-supplied table definitions from a YAML file,
// replacing the built-in catalog. The result is validated and returned
// in foreign-key topological order.
func LoadTables(filename, owner string) ([]Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	if len(yf.Tables) == 0 {
		return nil, fmt.Errorf("schema file %s defines no tables", filename)
	}

	var tables []Table
	for _, t := range yf.Tables {
		table := Table{
			Name:       t.Name,
			Owner:      owner,
			PrimaryKey: t.PrimaryKey,
		}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, Column{
				Name:    c.Name,
				Type:    c.Type,
				NotNull: c.NotNull,
				Unique:  c.Unique,
			})
			if c.References != nil {
				table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
					Name:             fmt.Sprintf("%s_%s_FK", t.Name, c.Name),
					Column:           c.Name,
					ReferencesTable:  c.References.Table,
					ReferencesColumn: c.References.Column,
				})
			}
		}
		tables = append(tables, table)
	}

	if err := Validate(tables); err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", filename, err)
	}
	return Sort(tables)
}
