package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

func testTables(t *testing.T) []schema.Table {
	t.Helper()
	tables, err := schema.Sort(schema.Catalog("HR"))
	require.NoError(t, err)
	return tables
}

func objectsOfKind(objects []Object, kind Kind) []Object {
	var out []Object
	for _, o := range objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func TestTableGeneratorKindGrouping(t *testing.T) {
	cfg := config.Default()
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)

	rank := map[Kind]int{KindTable: 0, KindConstraint: 1, KindSequence: 2, KindIndex: 3}
	last := -1
	for _, o := range objects {
		r, ok := rank[o.Kind]
		require.True(t, ok, "unexpected kind %s", o.Kind)
		assert.GreaterOrEqual(t, r, last, "object %s out of kind order", o)
		if r > last {
			last = r
		}
	}

	assert.Len(t, objectsOfKind(objects, KindTable), 8)
	// every table has a numeric _ID surrogate, so every table gets a sequence
	assert.Len(t, objectsOfKind(objects, KindSequence), 8)
}

func TestCreateTableDDL(t *testing.T) {
	cfg := config.Default()
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)

	var employees Object
	for _, o := range objectsOfKind(objects, KindTable) {
		if o.Name == "EMPLOYEES" {
			employees = o
		}
	}
	require.NotEmpty(t, employees.Name)

	assert.Contains(t, employees.SQL, "CREATE TABLE EMPLOYEES")
	assert.Contains(t, employees.SQL, "EMPLOYEE_ID NUMBER(6)")
	assert.Contains(t, employees.SQL, "LAST_NAME VARCHAR2(25) NOT NULL")
	assert.Contains(t, employees.SQL, "CONSTRAINT EMPLOYEES_PK PRIMARY KEY (EMPLOYEE_ID)")
	assert.Contains(t, employees.SQL, "TABLESPACE USERS")
	assert.Contains(t, employees.SQL, "COMMENT ON COLUMN EMPLOYEES.NOTES_JP")
	assert.Equal(t, "HR.EMPLOYEES", employees.Qualified())
}

func TestCreateTableWithoutStorage(t *testing.T) {
	cfg := config.Default()
	cfg.IncludeStorage = false
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)
	for _, o := range objects {
		assert.NotContains(t, o.SQL, "TABLESPACE USERS", "object %s carries a storage clause", o)
	}
}

func TestConstraintObjectDependencies(t *testing.T) {
	cfg := config.Default()
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)

	var emp Object
	for _, o := range objectsOfKind(objects, KindConstraint) {
		if o.Name == "EMPLOYEES_CONSTRAINTS" {
			emp = o
		}
	}
	require.NotEmpty(t, emp.Name)

	assert.Contains(t, emp.SQL, "FOREIGN KEY (DEPARTMENT_ID) REFERENCES DEPARTMENTS (DEPARTMENT_ID)")
	assert.Contains(t, emp.SQL, "CHECK (SALARY >= 0)")
	assert.Contains(t, emp.DependsOn, "HR.EMPLOYEES")
	assert.Contains(t, emp.DependsOn, "HR.DEPARTMENTS")
	assert.Contains(t, emp.DependsOn, "HR.JOBS")
}

func TestSequenceObject(t *testing.T) {
	obj, ok := sequenceObject(schema.Table{
		Name:       "ORDERS",
		Owner:      "HR",
		Columns:    []schema.Column{{Name: "ORDER_ID", Type: "NUMBER(12)", NotNull: true}},
		PrimaryKey: []string{"ORDER_ID"},
	})
	require.True(t, ok)
	assert.Equal(t, "ORDERS_SEQ", obj.Name)
	assert.Contains(t, obj.SQL, "CREATE SEQUENCE ORDERS_SEQ")
	assert.Equal(t, []string{"HR.ORDERS"}, obj.DependsOn)

	// no sequence without a single numeric _ID surrogate
	_, ok = sequenceObject(schema.Table{
		Name:       "T",
		Columns:    []schema.Column{{Name: "CODE", Type: "VARCHAR2(10)"}},
		PrimaryKey: []string{"CODE"},
	})
	assert.False(t, ok)
}

func TestIndexObjectsPerUniqueColumn(t *testing.T) {
	cfg := config.Default()
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)

	indexes := objectsOfKind(objects, KindIndex)
	// EMPLOYEES.EMAIL and CUSTOMERS.EMAIL are the unique columns
	require.Len(t, indexes, 2)
	names := []string{indexes[0].Name, indexes[1].Name}
	assert.Contains(t, names, "EMPLOYEES_EMAIL_UK")
	assert.Contains(t, names, "CUSTOMERS_EMAIL_UK")
	for _, o := range indexes {
		assert.True(t, strings.Contains(o.SQL, "CREATE UNIQUE INDEX"), "got %q", o.SQL)
	}
}
