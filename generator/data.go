package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
	"github.com/njclarkbmf/oraschemagen/synth"
)

// DataGenerator synthesizes INSERT statements for every table, batching
// rows so a large row count does not become one object per row. Tables
// are processed in the given (topological) order so that a dependent
// table's foreign keys can draw from the referenced table's key domain.
type DataGenerator struct{}

func (g *DataGenerator) Kind() Kind { return KindData }

// ownerDomains adapts the Emitted index to the synthesizer's view, which
// is owner-agnostic: the synthesizer asks for bare table names.
type ownerDomains struct {
	em    *Emitted
	owner string
}

func (d ownerDomains) PrimaryKeys(table string) []string {
	return d.em.PrimaryKeys(qualified(d.owner, table))
}

func (g *DataGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	if cfg.RowCount == 0 {
		return nil, nil
	}
	s := synth.New(cfg.Seed, cfg.NullProbability)

	var objects []Object
	for _, t := range tables {
		batches, err := g.tableBatches(cfg, t, s, em)
		if err != nil {
			return nil, err
		}
		objects = append(objects, batches...)
	}
	return objects, nil
}

func (g *DataGenerator) tableBatches(cfg config.Config, t schema.Table, s *synth.Synthesizer, em *Emitted) ([]Object, error) {
	domains := ownerDomains{em: em, owner: t.Owner}
	pkColumn := ""
	if len(t.PrimaryKey) == 1 {
		pkColumn = strings.ToUpper(t.PrimaryKey[0])
	}

	deps := []string{qualified(t.Owner, t.Name)}
	for _, suffix := range []string{"_CONSTRAINTS", "_SEQ"} {
		if dep := qualified(t.Owner, t.Name+suffix); em.Has(dep) {
			deps = append(deps, dep)
		}
	}

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c.Name
	}

	var objects []Object
	var inserts []string
	batch := 1

	flush := func() {
		if len(inserts) == 0 {
			return
		}
		name := t.Name + "_DATA"
		if batch > 1 || len(inserts) < cfg.RowCount {
			name = fmt.Sprintf("%s_DATA_%d", t.Name, batch)
		}
		objects = append(objects, Object{
			Kind:      KindData,
			Name:      name,
			Owner:     t.Owner,
			SQL:       fmt.Sprintf("-- Data for %s\n%s", t.Name, strings.Join(inserts, "\n")),
			DependsOn: deps,
		})
		inserts = nil
		batch++
	}

	for i := 0; i < cfg.RowCount; i++ {
		row, err := s.Row(t, domains)
		if err != nil {
			return nil, err
		}
		values := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			values[j] = row[strings.ToUpper(c.Name)]
		}
		inserts = append(inserts, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
			t.Name, strings.Join(columns, ", "), strings.Join(values, ", ")))

		if pkColumn != "" {
			em.AddKey(qualified(t.Owner, t.Name), row[pkColumn])
		}
		if len(inserts) >= cfg.BatchSize {
			flush()
		}
	}
	flush()
	return objects, nil
}
