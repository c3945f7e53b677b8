package repository

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultPageSize is used when a list request does not name a page size.
	DefaultPageSize = 20
	// MaxPageSize caps the page size a caller may ask for.
	MaxPageSize = 100
)

// Scope narrows a query, e.g. to the caller's own rows.
type Scope = func(*gorm.DB) *gorm.DB

// ListSpec declares which query parameters a resource understands.
//
// Filters and Search values are SQL column expressions. A filter expression
// containing a "?" placeholder is used verbatim, otherwise it is compared for
// equality. Filter values are bound as strings unless Kinds declares the
// parameter as an integer or boolean column. Ordering maps the public field
// name to its column.
type ListSpec struct {
	Filters         map[string]string
	Kinds           map[string]FilterKind
	Search          []string
	Ordering        map[string]string
	DefaultOrdering []string
	Preloads        []string
}

// FilterKind is the column type a filter value is converted to.
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterInt
	FilterBool
)

// ListQuery is a parsed list request.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Ordering []string
	Filters  map[string]string
}

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Page is one page of list results with the total match count.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

// Map converts the results of p with fn, keeping the paging fields.
func Map[T, V any](p *Page[T], fn func(*T) V) *Page[V] {
	out := &Page[V]{
		Count:    p.Count,
		Page:     p.Page,
		PageSize: p.PageSize,
		Results:  make([]V, 0, len(p.Results)),
	}
	for i := range p.Results {
		out.Results = append(out.Results, fn(&p.Results[i]))
	}
	return out
}

func applyFilters(tx *gorm.DB, spec ListSpec, values map[string]string) *gorm.DB {
	for param, raw := range values {
		column, ok := spec.Filters[param]
		if !ok || raw == "" {
			continue
		}
		value := filterValue(raw, spec.Kinds[param])
		if strings.Contains(column, "?") {
			tx = tx.Where(column, value)
			continue
		}
		tx = tx.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return tx
}

// filterValue falls back to the raw string when it does not parse as kind,
// so a malformed value matches nothing instead of failing the query.
func filterValue(raw string, kind FilterKind) interface{} {
	switch kind {
	case FilterBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case FilterInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	return raw
}

func applySearch(tx *gorm.DB, columns []string, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return tx
	}
	pattern := "%" + strings.ToLower(term) + "%"

	group := tx.Session(&gorm.Session{NewDB: true})
	for i, column := range columns {
		expr := fmt.Sprintf("LOWER(%s) LIKE ?", column)
		if i == 0 {
			group = group.Where(expr, pattern)
		} else {
			group = group.Or(expr, pattern)
		}
	}
	return tx.Where(group)
}

func applyOrdering(tx *gorm.DB, spec ListSpec, requested []string) *gorm.DB {
	fields := make([]string, 0, len(requested))
	for _, field := range requested {
		name := strings.TrimPrefix(strings.TrimSpace(field), "-")
		if _, ok := spec.Ordering[name]; ok {
			fields = append(fields, strings.TrimSpace(field))
		}
	}
	if len(fields) == 0 {
		fields = spec.DefaultOrdering
	}

	hasID := false
	for _, field := range fields {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		column, ok := spec.Ordering[name]
		if !ok {
			column = name
		}
		if column == "id" {
			hasID = true
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Desc:   desc,
		})
	}
	if !hasID {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
	}
	return tx
}

// ParseOrdering splits a comma separated ordering parameter.
func ParseOrdering(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
