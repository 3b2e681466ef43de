package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// FunctionGenerator emits standalone PL/SQL functions: count, aggregate
// and format helpers bound to real tables and columns.
type FunctionGenerator struct{}

func (g *FunctionGenerator) Kind() Kind { return KindFunction }

func (g *FunctionGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	var objects []Object
	templates := []func(schema.Table) (Object, bool){
		countFunction, totalFunction, labelFunction,
	}

	count := 0
	for _, tmpl := range templates {
		for _, t := range tables {
			if count >= cfg.Functions {
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

func countFunction(t schema.Table) (Object, bool) {
	name := "GET_" + strings.ToUpper(t.Name) + "_COUNT"
	sql := fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s
RETURN NUMBER
IS
  l_count NUMBER;
BEGIN
  SELECT COUNT(*) INTO l_count FROM %s;
  RETURN l_count;
END %s;
/`, name, t.Name, name)
	return Object{
		Kind:      KindFunction,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

// totalFunction sums the table's first money column.
func totalFunction(t schema.Table) (Object, bool) {
	col, ok := firstColumnOfKind(t, schema.KindMoney)
	if !ok {
		return Object{}, false
	}
	name := fmt.Sprintf("TOTAL_%s_%s", constraintPrefix(t.Name), col.Name)
	sql := fmt.Sprintf(`-- Sums %s.%s, NULL-safe
CREATE OR REPLACE FUNCTION %s
RETURN NUMBER
IS
  l_total NUMBER;
BEGIN
  SELECT NVL(SUM(%s), 0) INTO l_total FROM %s;
  RETURN l_total;
END %s;
/`, t.Name, col.Name, name, col.Name, t.Name, name)
	return Object{
		Kind:      KindFunction,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

// labelFunction renders a one-line display label for a row, concatenating
// the table's text columns.
func labelFunction(t schema.Table) (Object, bool) {
	if len(t.PrimaryKey) != 1 {
		return Object{}, false
	}
	pk := t.PrimaryKey[0]
	var parts []string
	for _, c := range t.Columns {
		if c.Kind() == schema.KindText && c.MaxLength() > 0 {
			parts = append(parts, c.Name)
		}
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return Object{}, false
	}
	name := "FORMAT_" + singular(t.Name) + "_LABEL"
	sql := fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s(
  p_%s IN %s.%s%%TYPE
)
RETURN VARCHAR2
IS
  l_label VARCHAR2(400);
BEGIN
  SELECT %s INTO l_label
  FROM %s
  WHERE %s = p_%s;
  RETURN l_label;
EXCEPTION
  WHEN NO_DATA_FOUND THEN
    RETURN NULL;
END %s;
/`, name, strings.ToLower(pk), t.Name, pk,
		strings.Join(parts, " || ' ' || "),
		t.Name, pk, strings.ToLower(pk), name)
	return Object{
		Kind:      KindFunction,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}
