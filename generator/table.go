package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

const tableStorageClause = `TABLESPACE USERS PCTFREE 10 PCTUSED 40 INITRANS 1 MAXTRANS 255
NOLOGGING STORAGE(INITIAL 65536 NEXT 1048576 MINEXTENTS 1 MAXEXTENTS 2147483645
PCTINCREASE 0 FREELISTS 1 FREELIST GROUPS 1
BUFFER_POOL DEFAULT FLASH_CACHE DEFAULT CELL_FLASH_CACHE DEFAULT)`

const indexStorageClause = `TABLESPACE USERS PCTFREE 10 INITRANS 2 MAXTRANS 255 COMPUTE STATISTICS
STORAGE(INITIAL 65536 NEXT 1048576 MINEXTENTS 1 MAXEXTENTS 2147483645
PCTINCREASE 0 FREELISTS 1 FREELIST GROUPS 1
BUFFER_POOL DEFAULT FLASH_CACHE DEFAULT CELL_FLASH_CACHE DEFAULT)`

// TableGenerator emits the schema DDL: one Table object per table, then
// the associated Constraint, Sequence and Index objects as separate
// objects, each depending on its table. Objects come out kind-grouped so
// the overall stream keeps the canonical kind order.
type TableGenerator struct{}

func (g *TableGenerator) Kind() Kind { return KindTable }

func (g *TableGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	var objects []Object

	for _, t := range tables {
		objects = append(objects, Object{
			Kind:  KindTable,
			Name:  t.Name,
			Owner: t.Owner,
			SQL:   createTable(t, cfg.IncludeStorage),
		})
	}

	for _, t := range tables {
		if obj, ok := constraintObject(t); ok {
			objects = append(objects, obj)
		}
	}

	for _, t := range tables {
		if obj, ok := sequenceObject(t); ok {
			objects = append(objects, obj)
		}
	}

	for _, t := range tables {
		objects = append(objects, indexObjects(t, cfg.IncludeStorage)...)
	}

	return objects, nil
}

func createTable(t schema.Table, storage bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s\n(\n", t.Name)

	var defs []string
	for _, c := range t.Columns {
		def := fmt.Sprintf("  %s %s", c.Name, c.Type)
		if c.NotNull && !t.IsPrimaryKey(c.Name) {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}

	if len(t.PrimaryKey) > 0 {
		pk := fmt.Sprintf("  CONSTRAINT %s_PK PRIMARY KEY (%s)", t.Name, strings.Join(t.PrimaryKey, ", "))
		if storage {
			pk += "\n  USING INDEX " + indent(indexStorageClause, "  ")
		}
		defs = append(defs, pk)
	}

	b.WriteString(strings.Join(defs, ",\n"))
	if storage {
		b.WriteString("\n)\n" + tableStorageClause + ";")
	} else {
		b.WriteString("\n);")
	}

	if comments := columnComments(t); comments != "" {
		b.WriteString("\n\n" + comments)
	}
	return b.String()
}

// columnComments renders COMMENT ON statements for the Japanese shadow
// columns, mirroring what a real export carries alongside the DDL.
func columnComments(t schema.Table) string {
	var lines []string
	for _, c := range t.Columns {
		if c.Kind() == schema.KindJapanese {
			base := strings.TrimSuffix(strings.TrimSuffix(c.Name, "_JP"), "_JAPANESE")
			lines = append(lines, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s in Japanese';",
				t.Name, c.Name, titleCase(base)))
		}
	}
	return strings.Join(lines, "\n")
}

func titleCase(col string) string {
	words := strings.Split(strings.ToLower(col), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func constraintObject(t schema.Table) (Object, bool) {
	var stmts []string
	deps := []string{qualified(t.Owner, t.Name)}

	for _, fk := range t.ForeignKeys {
		stmts = append(stmts, fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s\n  FOREIGN KEY (%s) REFERENCES %s (%s)\n  ENABLE VALIDATE;",
			t.Name, fk.Name, fk.Column, fk.ReferencesTable, fk.ReferencesColumn))
		deps = appendUnique(deps, qualified(t.Owner, fk.ReferencesTable))
	}

	for _, c := range t.Columns {
		if c.Kind() == schema.KindMoney {
			stmts = append(stmts, fmt.Sprintf(
				"ALTER TABLE %s ADD CONSTRAINT %s_%s_CK\n  CHECK (%s >= 0) ENABLE VALIDATE;",
				t.Name, constraintPrefix(t.Name), c.Name, c.Name))
		}
	}

	if len(stmts) == 0 {
		return Object{}, false
	}
	return Object{
		Kind:      KindConstraint,
		Name:      t.Name + "_CONSTRAINTS",
		Owner:     t.Owner,
		SQL:       fmt.Sprintf("-- Constraints for %s\n%s", t.Name, strings.Join(stmts, "\n\n")),
		DependsOn: deps,
	}, true
}

// constraintPrefix shortens long table names so generated constraint
// identifiers stay within Oracle's 30 byte limit.
func constraintPrefix(table string) string {
	if len(table) > 10 {
		return table[:10]
	}
	return table
}

func sequenceObject(t schema.Table) (Object, bool) {
	if !hasNumericSurrogate(t) {
		return Object{}, false
	}
	name := t.Name + "_SEQ"
	sql := fmt.Sprintf(`CREATE SEQUENCE %s
  START WITH 1
  INCREMENT BY 1
  NOCACHE
  NOCYCLE;`, name)
	return Object{
		Kind:      KindSequence,
		Name:      name,
		Owner:     t.Owner,
		SQL:       sql,
		DependsOn: []string{qualified(t.Owner, t.Name)},
	}, true
}

// hasNumericSurrogate reports whether the table has a single numeric _ID
// primary key, the shape that gets a backing sequence.
func hasNumericSurrogate(t schema.Table) bool {
	if len(t.PrimaryKey) != 1 {
		return false
	}
	c, ok := t.Column(t.PrimaryKey[0])
	if !ok {
		return false
	}
	return strings.HasSuffix(strings.ToUpper(c.Name), "_ID") && c.BaseType() == "NUMBER"
}

func indexObjects(t schema.Table, storage bool) []Object {
	var objects []Object
	for _, c := range t.Columns {
		if !c.Unique {
			continue
		}
		name := fmt.Sprintf("%s_%s_UK", t.Name, c.Name)
		clause := ""
		if storage {
			clause = "\n" + indexStorageClause
		}
		objects = append(objects, Object{
			Kind:  KindIndex,
			Name:  name,
			Owner: t.Owner,
			SQL: fmt.Sprintf("-- Unique index for %s.%s\nCREATE UNIQUE INDEX %s ON %s(%s)%s;",
				t.Name, c.Name, name, t.Name, c.Name, clause),
			DependsOn: []string{qualified(t.Owner, t.Name)},
		})
	}
	return objects
}

func qualified(owner, name string) string {
	if owner == "" {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(owner + "." + name)
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
