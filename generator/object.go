package generator

import (
	"fmt"
	"strings"
)

// Kind identifies the class of a generated database object. Emission is
// always kind-major in the order of Order below.
type Kind string

const (
	KindTable      Kind = "TABLE"
	KindConstraint Kind = "CONSTRAINT"
	KindSequence   Kind = "SEQUENCE"
	KindIndex      Kind = "INDEX"
	KindData       Kind = "DATA"
	KindTrigger    Kind = "TRIGGER"
	KindProcedure  Kind = "PROCEDURE"
	KindFunction   Kind = "FUNCTION"
	KindPackage    Kind = "PACKAGE"
	KindLob        Kind = "LOB"
)

// Order is the canonical cross-kind emission order. Later kinds may
// textually reference names introduced by earlier kinds.
var Order = []Kind{
	KindTable, KindConstraint, KindSequence, KindIndex, KindData,
	KindTrigger, KindProcedure, KindFunction, KindPackage, KindLob,
}

// Rank returns the kind's position in Order; unknown kinds sort last.
func (k Kind) Rank() int {
	for i, o := range Order {
		if o == k {
			return i
		}
	}
	return len(Order)
}

// Object is one generated database artifact: pre-rendered SQL plus the
// bookkeeping needed to verify emission order. It is immutable once a
// generator returns it; nothing downstream re-parses the SQL.
type Object struct {
	Kind      Kind
	Name      string
	Owner     string
	SQL       string
	DependsOn []string // qualified names that must be emitted first
}

// Qualified returns OWNER.NAME, the form used in dependency sets.
func (o Object) Qualified() string {
	if o.Owner == "" {
		return strings.ToUpper(o.Name)
	}
	return strings.ToUpper(o.Owner + "." + o.Name)
}

func (o Object) String() string {
	return fmt.Sprintf("%s %s", o.Kind, o.Qualified())
}

// Emitted indexes what previous generator calls have produced: object
// names (for dependency declarations) and per-table primary-key literal
// domains (for foreign-key value synthesis). It is the only generation
// state shared across generators.
type Emitted struct {
	names map[string]struct{}
	keys  map[string][]string
}

func NewEmitted() *Emitted {
	return &Emitted{
		names: make(map[string]struct{}),
		keys:  make(map[string][]string),
	}
}

// Add records an object as produced.
func (e *Emitted) Add(o Object) {
	e.names[o.Qualified()] = struct{}{}
}

// Has reports whether a qualified object name has been produced.
func (e *Emitted) Has(qualified string) bool {
	_, ok := e.names[strings.ToUpper(qualified)]
	return ok
}

// Count returns how many objects have been recorded.
func (e *Emitted) Count() int {
	return len(e.names)
}

// AddKey appends one primary-key literal to a table's generated domain.
func (e *Emitted) AddKey(qualifiedTable, literal string) {
	k := strings.ToUpper(qualifiedTable)
	e.keys[k] = append(e.keys[k], literal)
}

// PrimaryKeys returns the key domain generated so far for a table.
func (e *Emitted) PrimaryKeys(qualifiedTable string) []string {
	return e.keys[strings.ToUpper(qualifiedTable)]
}
