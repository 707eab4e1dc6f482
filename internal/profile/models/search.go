package models

import (
	"strconv"
	"strings"

	"retrato/pkg/domain"
)

// Search limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// SearchParams is a validated municipality search.
type SearchParams struct {
	Query    string
	Province domain.ProvinceCode
	Limit    int
}

// Normalized trims the query and applies the default limit.
func (p SearchParams) Normalized() SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	return p
}

// Canonical renders the parameters in a stable order: equal searches produce
// equal strings regardless of query casing or surrounding whitespace.
func (p SearchParams) Canonical() string {
	n := p.Normalized()
	var b strings.Builder
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(n.Limit))
	b.WriteString("&province=")
	b.WriteString(string(n.Province))
	b.WriteString("&q=")
	b.WriteString(strings.ToLower(n.Query))
	return b.String()
}
