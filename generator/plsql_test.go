package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njclarkbmf/oraschemagen/config"
)

// ddlEmitted runs the table generator and records its objects, the state
// the PL/SQL generators see at runtime.
func ddlEmitted(t *testing.T, cfg config.Config) *Emitted {
	t.Helper()
	em := NewEmitted()
	objects, err := (&TableGenerator{}).Generate(cfg, testTables(t), em)
	require.NoError(t, err)
	for _, o := range objects {
		em.Add(o)
	}
	return em
}

func TestTriggerGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Triggers = 3
	em := ddlEmitted(t, cfg)

	objects, err := (&TriggerGenerator{}).Generate(cfg, testTables(t), em)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	// the before-insert template runs first, over tables in order
	assert.Equal(t, "LOCATIONS_BI_TRG", objects[0].Name)
	assert.Contains(t, objects[0].SQL, "BEFORE INSERT ON LOCATIONS")
	assert.Contains(t, objects[0].SQL, "LOCATIONS_SEQ.NEXTVAL")
	assert.Contains(t, objects[0].DependsOn, "HR.LOCATIONS")
	assert.Contains(t, objects[0].DependsOn, "HR.LOCATIONS_SEQ")
	for _, o := range objects {
		assert.Equal(t, KindTrigger, o.Kind)
		assert.Contains(t, o.SQL, "CREATE OR REPLACE TRIGGER")
	}
}

func TestTriggerGeneratorNeedsSequences(t *testing.T) {
	cfg := config.Default()
	cfg.Triggers = 20

	// without the DDL pass no sequences exist, so no before-insert triggers
	objects, err := (&TriggerGenerator{}).Generate(cfg, testTables(t), NewEmitted())
	require.NoError(t, err)
	for _, o := range objects {
		assert.NotContains(t, o.Name, "_BI_TRG")
	}
}

func TestProcedureGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Procedures = 3
	em := ddlEmitted(t, cfg)

	objects, err := (&ProcedureGenerator{}).Generate(cfg, testTables(t), em)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	assert.Equal(t, "CREATE_LOCATION", objects[0].Name)
	assert.Contains(t, objects[0].SQL, "p_city IN LOCATIONS.CITY%TYPE")
	assert.Contains(t, objects[0].SQL, "LOCATIONS_SEQ.NEXTVAL")
	assert.Contains(t, objects[0].SQL, "ROLLBACK")
}

func TestFunctionGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Functions = 3
	em := ddlEmitted(t, cfg)

	objects, err := (&FunctionGenerator{}).Generate(cfg, testTables(t), em)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	assert.Equal(t, "GET_LOCATIONS_COUNT", objects[0].Name)
	assert.Contains(t, objects[0].SQL, "SELECT COUNT(*) INTO l_count FROM LOCATIONS")
	for _, o := range objects {
		assert.Equal(t, KindFunction, o.Kind)
	}
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "EMPLOYEE", singular("EMPLOYEES"))
	assert.Equal(t, "CATEGORY", singular("CATEGORIES"))
	assert.Equal(t, "STAFF", singular("STAFF"))
}

func TestPackageGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Packages = 2
	em := ddlEmitted(t, cfg)
	tables := testTables(t)

	objects, err := (&PackageGenerator{}).Generate(cfg, tables, em)
	require.NoError(t, err)
	require.Len(t, objects, 2)

	assert.Equal(t, "HR_MAINT_PKG_1", objects[0].Name)
	assert.Equal(t, "HR_MAINT_PKG_2", objects[1].Name)

	// spec and body in one object, covering every table exactly once
	covered := 0
	for _, o := range objects {
		assert.Contains(t, o.SQL, "CREATE OR REPLACE PACKAGE ")
		assert.Contains(t, o.SQL, "CREATE OR REPLACE PACKAGE BODY ")
		covered += len(o.DependsOn)
	}
	assert.Equal(t, len(tables), covered)

	assert.Contains(t, objects[0].SQL, "FUNCTION COUNT_LOCATIONS RETURN NUMBER;")
	assert.Contains(t, objects[0].SQL, "FUNCTION EXISTS_LOCATION(p_id IN LOCATIONS.LOCATION_ID%TYPE) RETURN BOOLEAN;")
}

func TestLobGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.Lobs = 3
	em := ddlEmitted(t, cfg)

	objects, err := (&LobGenerator{}).Generate(cfg, testTables(t), em)
	require.NoError(t, err)
	require.Len(t, objects, 3)

	// first CLOB column in catalog order is DEPARTMENTS.DESCRIPTION_JP
	for _, o := range objects {
		assert.Equal(t, KindLob, o.Kind)
		assert.Contains(t, o.SQL, "DESCRIPTION_JP")
		assert.Contains(t, o.DependsOn, "HR.DEPARTMENTS")
	}
	assert.True(t, strings.Contains(objects[0].SQL, "DBMS_LOB.APPEND"))
	assert.True(t, strings.Contains(objects[1].SQL, "DBMS_LOB.GETLENGTH"))
	assert.True(t, strings.Contains(objects[2].SQL, "DBMS_LOB.INSTR"))
}

func TestLobGeneratorWithoutClobs(t *testing.T) {
	cfg := config.Default()
	tables := testTables(t)[:1] // LOCATIONS has no CLOB column
	objects, err := (&LobGenerator{}).Generate(cfg, tables, NewEmitted())
	require.NoError(t, err)
	assert.Empty(t, objects)
}
