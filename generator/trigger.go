package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// TriggerGenerator emits row-level, statement-level and compound triggers
// whose bodies reference real table and column names. Content is
// structurally valid PL/SQL; it is never executed or verified.
type TriggerGenerator struct{}

func (g *TriggerGenerator) Kind() Kind { return KindTrigger }

func (g *TriggerGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	var objects []Object
	templates := []func(schema.Table, *Emitted) (Object, bool){
		biTrigger, auditTrigger, touchTrigger,
	}

	count := 0
	for _, tmpl := range templates {
		for _, t := range tables {
			if count >= cfg.Triggers {
				return objects, nil
			}
			if obj, ok := tmpl(t, em); ok {
				objects = append(objects, obj)
				count++
			}
		}
	}
	return objects, nil
}

// biTrigger assigns the surrogate key from the table's sequence before
// insert, the classic Oracle identity pattern.
func biTrigger(t schema.Table, em *Emitted) (Object, bool) {
	if !hasNumericSurrogate(t) {
		return Object{}, false
	}
	seq := qualified(t.Owner, t.Name+"_SEQ")
	if !em.Has(seq) {
		return Object{}, false
	}
	pk := t.PrimaryKey[0]
	name := t.Name + "_BI_TRG"
	sql := fmt.Sprintf(`-- Assigns %s from %s_SEQ when not provided
CREATE OR REPLACE TRIGGER %s
BEFORE INSERT ON %s
FOR EACH ROW
WHEN (NEW.%s IS NULL)
BEGIN
  SELECT %s_SEQ.NEXTVAL INTO :NEW.%s FROM DUAL;
END;
/`, pk, t.Name, name, t.Name, pk, t.Name, pk)
	return Object{
		Kind:      KindTrigger,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name), seq},
	}, true
}

// auditTrigger is a compound trigger guarding updates of the first money
// column against implausible jumps.
func auditTrigger(t schema.Table, em *Emitted) (Object, bool) {
	col, ok := firstColumnOfKind(t, schema.KindMoney)
	if !ok || len(t.PrimaryKey) != 1 {
		return Object{}, false
	}
	pk := t.PrimaryKey[0]
	name := fmt.Sprintf("%s_%s_CHK_TRG", constraintPrefix(t.Name), col.Name)
	sql := fmt.Sprintf(`-- Compound trigger validating %s changes on %s
CREATE OR REPLACE TRIGGER %s
FOR UPDATE OF %s ON %s
COMPOUND TRIGGER
  TYPE change_rec IS RECORD (
    row_id    %s.%s%%TYPE,
    old_value %s.%s%%TYPE,
    new_value %s.%s%%TYPE
  );
  TYPE change_tab IS TABLE OF change_rec INDEX BY PLS_INTEGER;
  l_changes change_tab;
  l_idx PLS_INTEGER := 0;
  MAX_INCREASE_PCT CONSTANT NUMBER := 20;

  BEFORE STATEMENT IS
  BEGIN
    l_changes.DELETE;
    l_idx := 0;
  END BEFORE STATEMENT;

  BEFORE EACH ROW IS
  BEGIN
    IF :NEW.%s > :OLD.%s AND :OLD.%s > 0 THEN
      IF ((:NEW.%s - :OLD.%s) / :OLD.%s) * 100 > MAX_INCREASE_PCT THEN
        RAISE_APPLICATION_ERROR(-20001,
          'Increase of %s exceeds ' || MAX_INCREASE_PCT || ' percent');
      END IF;
      l_idx := l_idx + 1;
      l_changes(l_idx).row_id := :OLD.%s;
      l_changes(l_idx).old_value := :OLD.%s;
      l_changes(l_idx).new_value := :NEW.%s;
    END IF;
  END BEFORE EACH ROW;

  AFTER STATEMENT IS
  BEGIN
    FOR i IN 1..l_changes.COUNT LOOP
      DBMS_OUTPUT.PUT_LINE('AUDIT: ' || l_changes(i).row_id ||
        ' %s ' || l_changes(i).old_value || ' -> ' || l_changes(i).new_value);
    END LOOP;
  END AFTER STATEMENT;
END;
/`,
		col.Name, t.Name, name, col.Name, t.Name,
		t.Name, pk, t.Name, col.Name, t.Name, col.Name,
		col.Name, col.Name, col.Name,
		col.Name, col.Name, col.Name,
		col.Name,
		pk, col.Name, col.Name,
		col.Name)
	return Object{
		Kind:      KindTrigger,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

// touchTrigger keeps a MODIFIED/UPDATED date column current.
func touchTrigger(t schema.Table, em *Emitted) (Object, bool) {
	var dateCol schema.Column
	found := false
	for _, c := range t.Columns {
		n := strings.ToUpper(c.Name)
		if c.Kind() == schema.KindDate && (strings.Contains(n, "MODIFIED") || strings.Contains(n, "UPDATED")) {
			dateCol, found = c, true
			break
		}
	}
	if !found {
		return Object{}, false
	}
	name := t.Name + "_TOUCH_TRG"
	sql := fmt.Sprintf(`-- Keeps %s.%s current on every update
CREATE OR REPLACE TRIGGER %s
BEFORE UPDATE ON %s
FOR EACH ROW
BEGIN
  :NEW.%s := SYSDATE;
END;
/`, t.Name, dateCol.Name, name, t.Name, dateCol.Name)
	return Object{
		Kind:      KindTrigger,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

func firstColumnOfKind(t schema.Table, kind schema.SemanticKind) (schema.Column, bool) {
	for _, c := range t.Columns {
		if c.Kind() == kind {
			return c, true
		}
	}
	return schema.Column{}, false
}
