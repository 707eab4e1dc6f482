package opendata

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterKind enumerates the filter shapes the portals understand.
type FilterKind int

const (
	// FilterContains renders field:*text* in the v1 q parameter.
	FilterContains FilterKind = iota
	// FilterExact renders field:"text" in the v1 q parameter.
	FilterExact
	// FilterRefine renders a refine.field=value facet refinement (v1).
	FilterRefine
	// FilterWhere renders field="value" in the v2.1 where expression.
	FilterWhere
)

// Filter is one typed condition.
type Filter struct {
	Kind  FilterKind
	Field string
	Value string
}

// Query describes a dataset request without any string concatenation at
// call sites. Free text is escaped when rendered.
type Query struct {
	Dataset string
	Rows    int
	Facets  []string
	Filters []Filter
}

// NewQuery starts a query against dataset.
func NewQuery(dataset string) *Query {
	return &Query{Dataset: dataset}
}

func (q *Query) WithRows(n int) *Query {
	q.Rows = n
	return q
}

func (q *Query) WithFacet(fields ...string) *Query {
	q.Facets = append(q.Facets, fields...)
	return q
}

func (q *Query) Contains(field, text string) *Query {
	return q.add(FilterContains, field, text)
}

func (q *Query) Exact(field, text string) *Query {
	return q.add(FilterExact, field, text)
}

func (q *Query) Refine(field, value string) *Query {
	return q.add(FilterRefine, field, value)
}

func (q *Query) Where(field, value string) *Query {
	return q.add(FilterWhere, field, value)
}

func (q *Query) add(kind FilterKind, field, value string) *Query {
	if strings.TrimSpace(value) == "" {
		return q
	}
	q.Filters = append(q.Filters, Filter{Kind: kind, Field: field, Value: value})
	return q
}

// RecordsSearchParams renders the v1 records/1.0/search parameters.
func (q *Query) RecordsSearchParams() url.Values {
	v := url.Values{}
	v.Set("dataset", q.Dataset)
	v.Set("format", "json")
	if q.Rows > 0 {
		v.Set("rows", strconv.Itoa(q.Rows))
	}
	for _, f := range q.Facets {
		v.Add("facet", f)
	}
	var terms []string
	for _, f := range q.Filters {
		switch f.Kind {
		case FilterContains:
			if term := sanitizeWildcard(f.Value); term != "" {
				terms = append(terms, f.Field+":*"+term+"*")
			}
		case FilterExact:
			terms = append(terms, f.Field+":"+quote(f.Value))
		case FilterRefine:
			v.Add("refine."+f.Field, f.Value)
		}
	}
	if len(terms) > 0 {
		v.Set("q", strings.Join(terms, " AND "))
	}
	return v
}

// CatalogParams renders the v2.1 catalog records parameters.
func (q *Query) CatalogParams() url.Values {
	v := url.Values{}
	v.Set("format", "json")
	if q.Rows > 0 {
		v.Set("limit", strconv.Itoa(q.Rows))
	}
	var conds []string
	for _, f := range q.Filters {
		if f.Kind == FilterWhere {
			conds = append(conds, f.Field+"="+quote(f.Value))
		}
	}
	if len(conds) > 0 {
		v.Set("where", strings.Join(conds, " AND "))
	}
	return v
}

// CatalogPath is the v2.1 records path of the dataset.
func (q *Query) CatalogPath() string {
	return "/" + url.PathEscape(q.Dataset) + "/records"
}

// quote wraps s in double quotes, escaping backslashes and quotes.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(strings.TrimSpace(s)) + `"`
}

// sanitizeWildcard drops characters with meaning in the query language so a
// substring term cannot widen or break the expression.
func sanitizeWildcard(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '*', '?', '"', '\\', '(', ')', '[', ']', '{', '}', ':', '^', '~', '#', '&', '|', '!':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
