package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// ProcedureGenerator emits standalone PL/SQL procedures built from table
// metadata: create/lookup/purge patterns over real column names.
type ProcedureGenerator struct{}

func (g *ProcedureGenerator) Kind() Kind { return KindProcedure }

func (g *ProcedureGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	var objects []Object
	templates := []func(schema.Table) (Object, bool){
		createProcedure, deleteProcedure, purgeProcedure,
	}

	count := 0
	for _, tmpl := range templates {
		for _, t := range tables {
			if count >= cfg.Procedures {
				return objects, nil
			}
			if obj, ok := tmpl(t); ok {
				objects = append(objects, obj)
				count++
			}
		}
	}
	return objects, nil
}

func singular(table string) string {
	s := strings.ToUpper(table)
	switch {
	case strings.HasSuffix(s, "IES"):
		return s[:len(s)-3] + "Y"
	case strings.HasSuffix(s, "S"):
		return s[:len(s)-1]
	}
	return s
}

// createProcedure inserts a row from IN parameters and returns the new
// surrogate key through an OUT parameter.
func createProcedure(t schema.Table) (Object, bool) {
	if !hasNumericSurrogate(t) {
		return Object{}, false
	}
	pk := t.PrimaryKey[0]

	var params, cols, vals []string
	for _, c := range t.Columns {
		if t.IsPrimaryKey(c.Name) || c.BaseType() == "CLOB" || c.BaseType() == "BLOB" {
			continue
		}
		params = append(params, fmt.Sprintf("  p_%s IN %s.%s%%TYPE", strings.ToLower(c.Name), t.Name, c.Name))
		cols = append(cols, c.Name)
		vals = append(vals, "p_"+strings.ToLower(c.Name))
	}
	if len(params) == 0 {
		return Object{}, false
	}
	params = append(params, fmt.Sprintf("  p_%s OUT %s.%s%%TYPE", strings.ToLower(pk), t.Name, pk))

	name := "CREATE_" + singular(t.Name)
	sql := fmt.Sprintf(`-- Inserts one %s row and returns the new key
CREATE OR REPLACE PROCEDURE %s(
%s
)
IS
BEGIN
  SELECT %s_SEQ.NEXTVAL INTO p_%s FROM DUAL;

  INSERT INTO %s (%s, %s)
  VALUES (p_%s, %s);

  COMMIT;
EXCEPTION
  WHEN OTHERS THEN
    ROLLBACK;
    RAISE;
END %s;
/`, singular(t.Name), name, strings.Join(params, ",\n"),
		t.Name, strings.ToLower(pk),
		t.Name, pk, strings.Join(cols, ", "),
		strings.ToLower(pk), strings.Join(vals, ", "),
		name)
	return Object{
		Kind:      KindProcedure,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

func deleteProcedure(t schema.Table) (Object, bool) {
	if len(t.PrimaryKey) != 1 {
		return Object{}, false
	}
	pk := t.PrimaryKey[0]
	name := "REMOVE_" + singular(t.Name)
	sql := fmt.Sprintf(`-- Deletes one %s row, failing when it does not exist
CREATE OR REPLACE PROCEDURE %s(
  p_%s IN %s.%s%%TYPE
)
IS
  l_count NUMBER;
BEGIN
  SELECT COUNT(*) INTO l_count FROM %s WHERE %s = p_%s;
  IF l_count = 0 THEN
    RAISE_APPLICATION_ERROR(-20002, '%s not found: ' || p_%s);
  END IF;

  DELETE FROM %s WHERE %s = p_%s;
  COMMIT;
EXCEPTION
  WHEN OTHERS THEN
    ROLLBACK;
    RAISE;
END %s;
/`, singular(t.Name), name,
		strings.ToLower(pk), t.Name, pk,
		t.Name, pk, strings.ToLower(pk),
		singular(t.Name), strings.ToLower(pk),
		t.Name, pk, strings.ToLower(pk),
		name)
	return Object{
		Kind:      KindProcedure,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

// purgeProcedure batch-deletes rows older than a cutoff on the table's
// first date column.
func purgeProcedure(t schema.Table) (Object, bool) {
	col, ok := firstColumnOfKind(t, schema.KindDate)
	if !ok {
		return Object{}, false
	}
	name := "PURGE_OLD_" + strings.ToUpper(t.Name)
	sql := fmt.Sprintf(`-- Removes %s rows older than the given number of days
CREATE OR REPLACE PROCEDURE %s(
  p_days IN NUMBER DEFAULT 365,
  p_deleted OUT NUMBER
)
IS
BEGIN
  DELETE FROM %s
  WHERE %s < SYSDATE - p_days;

  p_deleted := SQL%%ROWCOUNT;
  COMMIT;
EXCEPTION
  WHEN OTHERS THEN
    ROLLBACK;
    RAISE;
END %s;
/`, t.Name, name, t.Name, col.Name, name)
	return Object{
		Kind:      KindProcedure,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}
