package runner

import (
	"fmt"
	"sort"
	"time"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/generator"
	"github.com/njclarkbmf/oraschemagen/output"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// Observer receives progress checkpoints: one call after each generator
// finishes and one after the final write. Generation never blocks on it;
// implementations must return promptly.
type Observer interface {
	GeneratorFinished(kind generator.Kind, objects int)
	WriteFinished(report *output.Report)
}

// NopObserver discards all checkpoints.
type NopObserver struct{}

func (NopObserver) GeneratorFinished(generator.Kind, int) {}
func (NopObserver) WriteFinished(*output.Report)          {}

// Result is the typed outcome of a successful run.
type Result struct {
	Objects  int
	Counts   map[generator.Kind]int
	Files    []output.FileReport
	Coverage output.CoverageReport
	Elapsed  time.Duration
}

// Run executes one full generation: load and order the schema, select
// generators, produce the object stream, write it out. Configuration and
// factory errors surface before any file is created.
func Run(cfg config.Config, obs Observer) (*Result, error) {
	start := time.Now()
	if obs == nil {
		obs = NopObserver{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gens, err := generator.Generators(cfg.Kinds)
	if err != nil {
		return nil, err
	}

	writer, err := output.NewWriter(cfg)
	if err != nil {
		return nil, err
	}

	var objects []generator.Object
	em := generator.NewEmitted()

	for _, owner := range cfg.Schemas {
		tables, err := loadTables(cfg, owner)
		if err != nil {
			return nil, err
		}
		for _, g := range gens {
			produced, err := g.Generate(cfg, tables, em)
			if err != nil {
				return nil, fmt.Errorf("%s generator: %w", g.Kind(), err)
			}
			for _, o := range produced {
				em.Add(o)
			}
			objects = append(objects, produced...)
			obs.GeneratorFinished(g.Kind(), len(produced))
		}
	}

	// with several schemas a later owner's Table objects would follow the
	// first owner's later kinds; restore the global kind order. The sort
	// is stable, so within a kind the per-owner topological order holds.
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Kind.Rank() < objects[j].Kind.Rank()
	})

	report, err := writer.Write(objects)
	if err != nil {
		return nil, err
	}
	obs.WriteFinished(report)

	return &Result{
		Objects:  len(objects),
		Counts:   report.Counts,
		Files:    report.Files,
		Coverage: report.Coverage,
		Elapsed:  time.Since(start),
	}, nil
}

// loadTables resolves the schema description for one owner: the YAML
// override when configured, the built-in catalog otherwise. Tables come
// back validated, foreign-key ordered and capped to the configured count.
func loadTables(cfg config.Config, owner string) ([]schema.Table, error) {
	var (
		tables []schema.Table
		err    error
	)
	if cfg.SchemaFile != "" {
		tables, err = schema.LoadTables(cfg.SchemaFile, owner)
		if err != nil {
			return nil, err
		}
	} else {
		tables, err = schema.Sort(schema.Catalog(owner))
		if err != nil {
			return nil, err
		}
	}
	if len(tables) > cfg.TableCount {
		tables = tables[:cfg.TableCount]
	}
	if err := schema.Validate(tables); err != nil {
		return nil, err
	}
	return tables, nil
}
