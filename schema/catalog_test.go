package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsValid(t *testing.T) {
	tables := Catalog("HR")
	require.NoError(t, Validate(tables))
	assert.Len(t, tables, 8)
	for _, table := range tables {
		assert.Equal(t, "HR", table.Owner)
		assert.NotEmpty(t, table.PrimaryKey, "table %s has no primary key", table.Name)
	}
}

func TestCatalogOrderRespectsForeignKeys(t *testing.T) {
	tables := Catalog("HR")
	position := make(map[string]int, len(tables))
	for i, table := range tables {
		position[table.Name] = i
	}
	for _, table := range tables {
		for _, fk := range table.ForeignKeys {
			if fk.ReferencesTable == table.Name {
				continue
			}
			ref, ok := position[fk.ReferencesTable]
			require.True(t, ok, "%s references unknown table %s", table.Name, fk.ReferencesTable)
			assert.Less(t, ref, position[table.Name],
				"%s must come after %s", table.Name, fk.ReferencesTable)
		}
	}
}

func TestSortReordersDependents(t *testing.T) {
	tables := []Table{
		{
			Name:    "ORDERS",
			Columns: []Column{{Name: "ORDER_ID", Type: "NUMBER(12)"}, {Name: "CUSTOMER_ID", Type: "NUMBER(6)"}},
			ForeignKeys: []ForeignKey{
				{Name: "ORD_CUST_FK", Column: "CUSTOMER_ID", ReferencesTable: "CUSTOMERS", ReferencesColumn: "CUSTOMER_ID"},
			},
		},
		{Name: "CUSTOMERS", Columns: []Column{{Name: "CUSTOMER_ID", Type: "NUMBER(6)"}}},
	}

	sorted, err := Sort(tables)
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, "CUSTOMERS", sorted[0].Name)
	assert.Equal(t, "ORDERS", sorted[1].Name)
}

func TestSortAllowsSelfReference(t *testing.T) {
	tables := []Table{
		{
			Name:    "EMPLOYEES",
			Columns: []Column{{Name: "EMPLOYEE_ID", Type: "NUMBER(6)"}, {Name: "MANAGER_ID", Type: "NUMBER(6)"}},
			ForeignKeys: []ForeignKey{
				{Name: "EMP_MGR_FK", Column: "MANAGER_ID", ReferencesTable: "EMPLOYEES", ReferencesColumn: "EMPLOYEE_ID"},
			},
		},
	}

	sorted, err := Sort(tables)
	require.NoError(t, err)
	assert.Len(t, sorted, 1)
}

func TestSortRejectsCycle(t *testing.T) {
	tables := []Table{
		{
			Name:    "A",
			Columns: []Column{{Name: "A_ID", Type: "NUMBER(6)"}, {Name: "B_ID", Type: "NUMBER(6)"}},
			ForeignKeys: []ForeignKey{
				{Name: "A_B_FK", Column: "B_ID", ReferencesTable: "B", ReferencesColumn: "B_ID"},
			},
		},
		{
			Name:    "B",
			Columns: []Column{{Name: "B_ID", Type: "NUMBER(6)"}, {Name: "A_ID", Type: "NUMBER(6)"}},
			ForeignKeys: []ForeignKey{
				{Name: "B_A_FK", Column: "A_ID", ReferencesTable: "A", ReferencesColumn: "A_ID"},
			},
		},
	}

	_, err := Sort(tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name   string
		tables []Table
		want   string
	}{
		{
			"missing primary key column",
			[]Table{{Name: "T", Columns: []Column{{Name: "A", Type: "NUMBER"}}, PrimaryKey: []string{"B"}}},
			"primary key column B",
		},
		{
			"unknown referenced table",
			[]Table{{
				Name:    "T",
				Columns: []Column{{Name: "A", Type: "NUMBER"}},
				ForeignKeys: []ForeignKey{
					{Name: "T_A_FK", Column: "A", ReferencesTable: "MISSING", ReferencesColumn: "A"},
				},
			}},
			"unknown table MISSING",
		},
		{
			"no columns",
			[]Table{{Name: "T"}},
			"no columns",
		},
		{
			"foreign key into composite primary key",
			[]Table{
				{
					Name:       "PARENTS",
					Columns:    []Column{{Name: "A_ID", Type: "NUMBER(6)"}, {Name: "B_ID", Type: "NUMBER(6)"}},
					PrimaryKey: []string{"A_ID", "B_ID"},
				},
				{
					Name:    "CHILDREN",
					Columns: []Column{{Name: "CHILD_ID", Type: "NUMBER(6)"}, {Name: "A_ID", Type: "NUMBER(6)"}},
					ForeignKeys: []ForeignKey{
						{Name: "CHILD_A_FK", Column: "A_ID", ReferencesTable: "PARENTS", ReferencesColumn: "A_ID"},
					},
				},
			},
			"single primary key column",
		},
		{
			"foreign key into non-key column",
			[]Table{
				{
					Name:       "PARENTS",
					Columns:    []Column{{Name: "PARENT_ID", Type: "NUMBER(6)"}, {Name: "CODE", Type: "VARCHAR2(10)"}},
					PrimaryKey: []string{"PARENT_ID"},
				},
				{
					Name:    "CHILDREN",
					Columns: []Column{{Name: "CHILD_ID", Type: "NUMBER(6)"}, {Name: "CODE", Type: "VARCHAR2(10)"}},
					ForeignKeys: []ForeignKey{
						{Name: "CHILD_CODE_FK", Column: "CODE", ReferencesTable: "PARENTS", ReferencesColumn: "CODE"},
					},
				},
			},
			"single primary key column",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tables)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
