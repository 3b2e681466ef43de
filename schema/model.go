package schema

import (
	"strconv"
	"strings"
)

// Table describes one table of the schema being exported.
type Table struct {
	Name        string
	Owner       string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// ForeignKey references another table by name. The referenced table must
// appear earlier in topological generation order (self-references excepted).
type ForeignKey struct {
	Name             string
	Column           string
	ReferencesTable  string
	ReferencesColumn string
}

// Column describes one column: name, declared Oracle type and flags.
type Column struct {
	Name    string
	Type    string // e.g. NUMBER(8,2), VARCHAR2(25), DATE, CLOB
	NotNull bool
	Unique  bool
}

func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// IsPrimaryKey reports whether the named column is part of the primary key.
func (t Table) IsPrimaryKey(column string) bool {
	for _, pk := range t.PrimaryKey {
		if strings.EqualFold(pk, column) {
			return true
		}
	}
	return false
}

// ForeignKeyFor returns the foreign key constraining the named column.
func (t Table) ForeignKeyFor(column string) (ForeignKey, bool) {
	for _, fk := range t.ForeignKeys {
		if strings.EqualFold(fk.Column, column) {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// BaseType returns the declared type without precision, upper-cased:
// NUMBER(8,2) -> NUMBER, VARCHAR2(25) -> VARCHAR2.
func (c Column) BaseType() string {
	t := strings.ToUpper(strings.TrimSpace(c.Type))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	return t
}

// Precision returns the declared (precision, scale) of a numeric column.
// NUMBER(8,2) -> (8, 2, true); NUMBER(6) -> (6, 0, true); NUMBER -> (38, 0, true).
func (c Column) Precision() (precision, scale int, ok bool) {
	t := strings.ToUpper(strings.TrimSpace(c.Type))
	if !strings.HasPrefix(t, "NUMBER") {
		return 0, 0, false
	}
	open := strings.IndexByte(t, '(')
	end := strings.IndexByte(t, ')')
	if open < 0 || end < open {
		return 38, 0, true
	}
	parts := strings.Split(t[open+1:end], ",")
	precision, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || precision <= 0 {
		return 38, 0, true
	}
	if len(parts) > 1 {
		scale, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return precision, scale, true
}

// MaxLength returns the declared character length of a text column,
// or 0 when the type carries no length (DATE, CLOB, plain NUMBER).
func (c Column) MaxLength() int {
	switch c.BaseType() {
	case "VARCHAR2", "NVARCHAR2", "CHAR", "NCHAR":
	default:
		return 0
	}
	t := strings.ToUpper(c.Type)
	open := strings.IndexByte(t, '(')
	end := strings.IndexByte(t, ')')
	if open < 0 || end < open {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(t[open+1:end], " CHAR")))
	if err != nil {
		return 0
	}
	return n
}

// SemanticKind classifies what a column's values should look like,
// inferred from its name and declared type.
type SemanticKind int

const (
	KindIdentifier SemanticKind = iota // *_ID: surrogate or foreign key
	KindDate                           // *DATE*, *_AT, *_TIME, or a date/timestamp type
	KindEmail
	KindPhone
	KindPercent  // *PCT*, *PERCENT*, *RATE*
	KindMoney    // *SALARY*, *AMOUNT*, *PRICE*, *COST*
	KindJapanese // *_JP, *_JAPANESE
	KindLob      // CLOB/BLOB without a more specific name match
	KindNumber   // numeric fallback
	KindText     // text fallback
)

func (k SemanticKind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindDate:
		return "date"
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	case KindPercent:
		return "percent"
	case KindMoney:
		return "money"
	case KindJapanese:
		return "japanese"
	case KindLob:
		return "lob"
	case KindNumber:
		return "number"
	}
	return "text"
}

// kindRule pairs a predicate with the kind it selects. Rules are evaluated
// top to bottom, first match wins, so ordering is part of the contract.
type kindRule struct {
	match func(name, baseType string) bool
	kind  SemanticKind
}

var kindRules = []kindRule{
	{func(n, _ string) bool { return strings.HasSuffix(n, "_ID") }, KindIdentifier},
	{func(n, t string) bool {
		return strings.Contains(n, "DATE") || strings.HasSuffix(n, "_AT") || strings.Contains(n, "_TIME") ||
			t == "DATE" || strings.HasPrefix(t, "TIMESTAMP")
	}, KindDate},
	{func(n, _ string) bool { return strings.Contains(n, "EMAIL") }, KindEmail},
	{func(n, _ string) bool { return strings.Contains(n, "PHONE") }, KindPhone},
	{func(n, _ string) bool {
		return strings.Contains(n, "PCT") || strings.Contains(n, "PERCENT") || strings.Contains(n, "RATE")
	}, KindPercent},
	{func(n, _ string) bool {
		return strings.Contains(n, "SALARY") || strings.Contains(n, "AMOUNT") ||
			strings.Contains(n, "PRICE") || strings.Contains(n, "COST") || strings.Contains(n, "TOTAL") ||
			strings.Contains(n, "LIMIT")
	}, KindMoney},
	{func(n, _ string) bool { return strings.HasSuffix(n, "_JP") || strings.HasSuffix(n, "_JAPANESE") }, KindJapanese},
	{func(_, t string) bool { return t == "CLOB" || t == "NCLOB" || t == "BLOB" }, KindLob},
	{func(_, t string) bool { return t == "NUMBER" || t == "FLOAT" || t == "INTEGER" }, KindNumber},
}

// Kind derives the semantic kind of the column. Pure function of
// (name, declared type): the same inputs always yield the same kind.
func (c Column) Kind() SemanticKind {
	name := strings.ToUpper(c.Name)
	base := c.BaseType()
	for _, r := range kindRules {
		if r.match(name, base) {
			return r.kind
		}
	}
	return KindText
}
