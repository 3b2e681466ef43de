package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `
tables:
  - name: EMPLOYEES
    primary_key: [EMPLOYEE_ID]
    columns:
      - name: EMPLOYEE_ID
        type: NUMBER(6)
        not_null: true
      - name: LAST_NAME
        type: VARCHAR2(25)
        not_null: true
      - name: EMAIL
        type: VARCHAR2(25)
        unique: true
      - name: DEPARTMENT_ID
        type: NUMBER(4)
        references:
          table: DEPARTMENTS
          column: DEPARTMENT_ID
  - name: DEPARTMENTS
    primary_key: [DEPARTMENT_ID]
    columns:
      - name: DEPARTMENT_ID
        type: NUMBER(4)
        not_null: true
      - name: DEPARTMENT_NAME
        type: VARCHAR2(30)
`

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables(writeSchemaFile(t, sampleSchema), "HR")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// sorted: DEPARTMENTS before its dependent EMPLOYEES
	assert.Equal(t, "DEPARTMENTS", tables[0].Name)
	assert.Equal(t, "EMPLOYEES", tables[1].Name)
	assert.Equal(t, "HR", tables[1].Owner)

	emp := tables[1]
	assert.Equal(t, []string{"EMPLOYEE_ID"}, emp.PrimaryKey)

	email, ok := emp.Column("EMAIL")
	require.True(t, ok)
	assert.True(t, email.Unique)

	fk, ok := emp.ForeignKeyFor("DEPARTMENT_ID")
	require.True(t, ok)
	assert.Equal(t, "EMPLOYEES_DEPARTMENT_ID_FK", fk.Name)
	assert.Equal(t, "DEPARTMENTS", fk.ReferencesTable)
	assert.Equal(t, "DEPARTMENT_ID", fk.ReferencesColumn)
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"), "HR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading schema file")
}

func TestLoadTablesEmpty(t *testing.T) {
	_, err := LoadTables(writeSchemaFile(t, "tables: []\n"), "HR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tables")
}

func TestLoadTablesCompositeKeyTarget(t *testing.T) {
	composite := `
tables:
  - name: PARENTS
    primary_key: [A_ID, B_ID]
    columns:
      - name: A_ID
        type: NUMBER(6)
      - name: B_ID
        type: NUMBER(6)
  - name: CHILDREN
    primary_key: [CHILD_ID]
    columns:
      - name: CHILD_ID
        type: NUMBER(6)
      - name: A_ID
        type: NUMBER(6)
        references:
          table: PARENTS
          column: A_ID
`
	// rejected up front as a configuration error, before any generation
	// could hit an empty key domain
	_, err := LoadTables(writeSchemaFile(t, composite), "HR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single primary key column")
}

func TestLoadTablesBrokenReference(t *testing.T) {
	broken := `
tables:
  - name: ORDERS
    primary_key: [ORDER_ID]
    columns:
      - name: ORDER_ID
        type: NUMBER(12)
      - name: CUSTOMER_ID
        type: NUMBER(6)
        references:
          table: CUSTOMERS
          column: CUSTOMER_ID
`
	_, err := LoadTables(writeSchemaFile(t, broken), "HR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table CUSTOMERS")
}
