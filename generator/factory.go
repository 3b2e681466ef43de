package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// Generator is the contract every object-kind variant implements. Given
// the run configuration, the schema description and the index of objects
// emitted so far, it returns its objects in emission order. Generators
// never inspect downstream output, only the Emitted index.
type Generator interface {
	Kind() Kind
	Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error)
}

// UnknownKindError reports a requested object-kind token that no
// generator handles. It is raised before any generation starts.
type UnknownKindError struct {
	Token string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown object kind %q (valid: %s)", e.Token, strings.Join(Tokens, ", "))
}

// Tokens lists the requestable object kinds. Constraints, sequences and
// indexes always accompany their tables and are not separately
// requestable, matching the Table variant's contract.
var Tokens = []string{"table", "data", "trigger", "procedure", "function", "package", "lob", "all"}

// Generators translates requested kind tokens into the concrete, ordered
// generator list. The table generator always runs first so that every
// later kind's dependencies exist; the rest follow the canonical order.
// Unknown tokens fail fast with UnknownKindError.
func Generators(kinds []string) ([]Generator, error) {
	requested := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		token := strings.ToLower(strings.TrimSpace(k))
		valid := false
		for _, t := range Tokens {
			if token == t {
				valid = true
				break
			}
		}
		if !valid {
			return nil, &UnknownKindError{Token: k}
		}
		requested[token] = true
	}
	all := requested["all"]

	gens := []Generator{&TableGenerator{}}
	if all || requested["data"] {
		gens = append(gens, &DataGenerator{})
	}
	if all || requested["trigger"] {
		gens = append(gens, &TriggerGenerator{})
	}
	if all || requested["procedure"] {
		gens = append(gens, &ProcedureGenerator{})
	}
	if all || requested["function"] {
		gens = append(gens, &FunctionGenerator{})
	}
	if all || requested["package"] {
		gens = append(gens, &PackageGenerator{})
	}
	if all || requested["lob"] {
		gens = append(gens, &LobGenerator{})
	}
	return gens, nil
}
