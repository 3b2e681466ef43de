package generator

import (
	"fmt"
	"strings"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/schema"
)

// PackageGenerator emits package spec/body pairs bundling maintenance
// routines for a group of tables. Each package is one object holding both
// the specification and the body.
type PackageGenerator struct{}

func (g *PackageGenerator) Kind() Kind { return KindPackage }

func (g *PackageGenerator) Generate(cfg config.Config, tables []schema.Table, em *Emitted) ([]Object, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	var objects []Object
	perPackage := (len(tables) + cfg.Packages - 1) / cfg.Packages
	if perPackage < 1 {
		perPackage = 1
	}

	for i := 0; i < cfg.Packages && i*perPackage < len(tables); i++ {
		group := tables[i*perPackage:]
		if len(group) > perPackage {
			group = group[:perPackage]
		}
		objects = append(objects, packageObject(i+1, group))
	}
	return objects, nil
}

func packageObject(n int, tables []schema.Table) Object {
	owner := tables[0].Owner
	name := fmt.Sprintf("%s_MAINT_PKG_%d", strings.ToUpper(owner), n)

	var specLines, bodyLines, deps []string
	for _, t := range tables {
		deps = append(deps, qualified(t.Owner, t.Name))
		fn := "COUNT_" + strings.ToUpper(t.Name)
		specLines = append(specLines, fmt.Sprintf("  FUNCTION %s RETURN NUMBER;", fn))
		bodyLines = append(bodyLines, fmt.Sprintf(`  FUNCTION %s RETURN NUMBER
  IS
    l_count NUMBER;
  BEGIN
    SELECT COUNT(*) INTO l_count FROM %s;
    RETURN l_count;
  END %s;`, fn, t.Name, fn))

		if len(t.PrimaryKey) == 1 {
			pk := t.PrimaryKey[0]
			pr := "EXISTS_" + singular(t.Name)
			specLines = append(specLines, fmt.Sprintf("  FUNCTION %s(p_id IN %s.%s%%TYPE) RETURN BOOLEAN;", pr, t.Name, pk))
			bodyLines = append(bodyLines, fmt.Sprintf(`  FUNCTION %s(p_id IN %s.%s%%TYPE) RETURN BOOLEAN
  IS
    l_count NUMBER;
  BEGIN
    SELECT COUNT(*) INTO l_count FROM %s WHERE %s = p_id;
    RETURN l_count > 0;
  END %s;`, pr, t.Name, pk, t.Name, pk, pr))
		}
	}

	sql := fmt.Sprintf(`-- Maintenance package for %s
CREATE OR REPLACE PACKAGE %s AS
%s
END %s;
/

CREATE OR REPLACE PACKAGE BODY %s AS
%s
END %s;
/`, tableNames(tables), name, strings.Join(specLines, "\n"), name,
		name, strings.Join(bodyLines, "\n\n"), name)

	return Object{
		Kind:      KindPackage,
		Name:      name,
		Owner:     owner,
		SQL:       sql,
		DependsOn: deps,
	}
}

func tableNames(tables []schema.Table) string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
