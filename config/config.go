package config

import (
	"fmt"
	"strings"
)

// Supported output encodings. Lookup of the actual codec lives in the
// output package; the names are validated here so a bad --encoding fails
// before any generation starts.
var SupportedEncodings = []string{"utf-8", "shift_jis", "euc-jp"}

// Config holds every parameter of a generation run. It is built once by
// the CLI (or a test), validated, and never mutated afterwards.
type Config struct {
	Schemas []string // schema owners, e.g. HR
	Kinds   []string // requested object kind tokens, or "all"

	TableCount int // tables taken from the catalog (or override file)
	RowCount   int // data rows per table
	Triggers   int // triggers per table
	Procedures int
	Functions  int
	Packages   int
	Lobs       int

	OutputDir  string
	SingleFile bool   // one combined artifact instead of one file per kind
	Encoding   string // utf-8, shift_jis, euc-jp

	IncludeStorage bool // emit Oracle storage clauses
	IncludeHeader  bool // export header/footer framing
	Placeholder    string // substitute for characters the encoding cannot represent

	SchemaFile string // optional YAML table definitions, replaces the built-in catalog

	NullProbability float64 // chance a nullable column gets NULL
	Seed            int64
	BatchSize       int // rows per Data object

	Verbose bool
}

// Default returns the configuration the original tool ships with.
func Default() Config {
	return Config{
		Schemas:         []string{"HR"},
		Kinds:           []string{"all"},
		TableCount:      8,
		RowCount:        100,
		Triggers:        3,
		Procedures:      3,
		Functions:       3,
		Packages:        1,
		Lobs:            1,
		OutputDir:       "generated_sql",
		SingleFile:      false,
		Encoding:        "utf-8",
		IncludeStorage:  true,
		IncludeHeader:   true,
		Placeholder:     "?",
		NullProbability: 0.1,
		Seed:            1,
		BatchSize:       100,
	}
}

// Validate checks the parameter bag before any generator runs.
func (c Config) Validate() error {
	if len(c.Schemas) == 0 {
		return fmt.Errorf("at least one schema name is required")
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("at least one object kind is required")
	}
	if c.TableCount <= 0 {
		return fmt.Errorf("table count must be positive, got %d", c.TableCount)
	}
	if c.RowCount < 0 {
		return fmt.Errorf("row count cannot be negative, got %d", c.RowCount)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.NullProbability < 0 || c.NullProbability > 1 {
		return fmt.Errorf("null probability must be within [0,1], got %g", c.NullProbability)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	enc := strings.ToLower(c.Encoding)
	for _, e := range SupportedEncodings {
		if enc == e {
			return nil
		}
	}
	return fmt.Errorf("unsupported encoding %q (supported: %s)", c.Encoding, strings.Join(SupportedEncodings, ", "))
}
