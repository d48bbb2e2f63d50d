// Package query builds parameterized PostgreSQL SELECT statements over a
// projection of logical field names onto table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps logical field names (the names API clients filter and
// sort by) onto alias-qualified columns of one table.
type ProjectionMap struct {
	from    string
	alias   string
	fields  map[string]string
	columns []string
}

// NewProjectionMap creates a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:   fmt.Sprintf("%s.%s %s", schema, table, alias),
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps field onto column. Columns are selected in projection order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.fields[field] = qualified
	p.columns = append(p.columns, qualified)
	return p
}

// Column returns the qualified column for field. The lookup is
// case-insensitive on the first letter so "name" and "Name" agree.
func (p *ProjectionMap) Column(field string) (string, bool) {
	if col, ok := p.fields[field]; ok {
		return col, true
	}
	if field == "" {
		return "", false
	}
	for name, col := range p.fields {
		if strings.EqualFold(name, field) {
			return col, true
		}
	}
	return "", false
}

// From returns the aliased table reference.
func (p *ProjectionMap) From() string {
	return p.from
}

// Columns returns the select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

func (p *ProjectionMap) mustColumn(field string) string {
	col, ok := p.Column(field)
	if !ok {
		panic(fmt.Sprintf("query: field %q is not projected by %s", field, p.from))
	}
	return col
}
