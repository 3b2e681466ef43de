package generator

import (
	"fmt"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// LobGenerator emits DBMS_LOB utility routines for the CLOB columns the
// schema actually has. Each requested lob operation becomes one object.
type LobGenerator struct{}

func (g *LobGenerator) Kind() Kind { return KindLob }

func (g *LobGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	target, col, ok := firstClobColumn(tables)
	if !ok {
		return nil, nil
	}

	templates := []func(schema.Table, schema.Column) Object{
		appendClobObject, clobLengthObject, searchClobObject,
	}
	var objects []Object
	for i := 0; i < cfg.Lobs && i < len(templates); i++ {
		objects = append(objects, templates[i](target, col))
	}
	return objects, nil
}

func firstClobColumn(tables []schema.Table) (schema.Table, schema.Column, bool) {
	for _, t := range tables {
		for _, c := range t.Columns {
			if c.BaseType() == "CLOB" {
				return t, c, true
			}
		}
	}
	return schema.Table{}, schema.Column{}, false
}

func appendClobObject(t schema.Table, col schema.Column) Object {
	pk := "ROWID"
	if len(t.PrimaryKey) == 1 {
		pk = t.PrimaryKey[0]
	}
	name := fmt.Sprintf("APPEND_%s_%s", constraintPrefix(t.Name), col.Name)
	sql := fmt.Sprintf(`-- Appends text to %s.%s for one row
CREATE OR REPLACE PROCEDURE %s(
  p_id IN %s.%s%%TYPE,
  p_text IN VARCHAR2,
  p_add_newline IN BOOLEAN DEFAULT TRUE
)
IS
  l_clob CLOB;
BEGIN
  IF p_text IS NULL THEN
    RAISE_APPLICATION_ERROR(-20001, 'Text to append cannot be NULL');
  END IF;

  SELECT %s INTO l_clob
  FROM %s
  WHERE %s = p_id
  FOR UPDATE;

  IF p_add_newline AND DBMS_LOB.GETLENGTH(l_clob) > 0 THEN
    DBMS_LOB.APPEND(l_clob, TO_CLOB(CHR(10)));
  END IF;
  DBMS_LOB.APPEND(l_clob, TO_CLOB(p_text));

  COMMIT;
EXCEPTION
  WHEN NO_DATA_FOUND THEN
    RAISE_APPLICATION_ERROR(-20002, '%s row not found: ' || p_id);
  WHEN OTHERS THEN
    ROLLBACK;
    RAISE;
END %s;
/`, t.Name, col.Name, name, t.Name, pk, col.Name, t.Name, pk, t.Name, name)
	return Object{
		Kind:      KindLob,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}
}

func clobLengthObject(t schema.Table, col schema.Column) Object {
	pk := "ROWID"
	if len(t.PrimaryKey) == 1 {
		pk = t.PrimaryKey[0]
	}
	name := fmt.Sprintf("%s_%s_LENGTH", constraintPrefix(t.Name), col.Name)
	sql := fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s(
  p_id IN %s.%s%%TYPE
)
RETURN NUMBER
IS
  l_clob CLOB;
BEGIN
  SELECT %s INTO l_clob FROM %s WHERE %s = p_id;
  IF l_clob IS NULL THEN
    RETURN 0;
  END IF;
  RETURN DBMS_LOB.GETLENGTH(l_clob);
EXCEPTION
  WHEN NO_DATA_FOUND THEN
    RETURN NULL;
END %s;
/`, name, t.Name, pk, col.Name, t.Name, pk, name)
	return Object{
		Kind:      KindLob,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}
}

func searchClobObject(t schema.Table, col schema.Column) Object {
	pk := "ROWID"
	if len(t.PrimaryKey) == 1 {
		pk = t.PrimaryKey[0]
	}
	name := fmt.Sprintf("SEARCH_%s_%s", constraintPrefix(t.Name), col.Name)
	sql := fmt.Sprintf(`-- Returns the offset of p_pattern inside %s.%s, 0 when absent
CREATE OR REPLACE FUNCTION %s(
  p_id IN %s.%s%%TYPE,
  p_pattern IN VARCHAR2,
  p_start IN NUMBER DEFAULT 1
)
RETURN NUMBER
IS
  l_clob CLOB;
BEGIN
  IF p_pattern IS NULL OR LENGTH(p_pattern) = 0 THEN
    RETURN 0;
  END IF;

  SELECT %s INTO l_clob FROM %s WHERE %s = p_id;
  IF l_clob IS NULL OR DBMS_LOB.GETLENGTH(l_clob) = 0 THEN
    RETURN 0;
  END IF;

  RETURN DBMS_LOB.INSTR(l_clob, p_pattern, p_start);
EXCEPTION
  WHEN NO_DATA_FOUND THEN
    RETURN 0;
END %s;
/`, t.Name, col.Name, name, t.Name, pk, col.Name, t.Name, pk, name)
	return Object{
		Kind:      KindLob,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}
}
