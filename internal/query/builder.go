package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Descriptor is the canonical, comparable form of a SearchCriteria. Text
// values are stored in their wire encoding, so two criteria that differ only
// in whitespace yield equal descriptors. Descriptor is safe to use as a map key.
type Descriptor struct {
	Title  string
	Author string
	ISBN   string
	Fields string
	Limit  int
	Page   int
	Sort   SortMode
}

// Build validates criteria and normalizes them into a Descriptor.
func Build(c SearchCriteria) (Descriptor, error) {
	title := encodeWords(c.Title)
	author := encodeWords(c.Author)
	isbn := encodeWords(c.ISBN)
	if title == "" && author == "" && isbn == "" {
		return Descriptor{}, invalid("", "at least one of title, author or isbn is required")
	}

	if c.Limit < 1 {
		return Descriptor{}, invalid("limit", "must be at least 1")
	}
	limit := min(c.Limit, MaxLimit)

	if c.Page < 1 {
		return Descriptor{}, invalid("page", "must be at least 1")
	}

	return Descriptor{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Fields: joinFields(c.Fields),
		Limit:  limit,
		Page:   c.Page,
		Sort:   ParseSort(string(c.Sort)),
	}, nil
}

// encodeWords collapses whitespace runs and joins the escaped words with "+",
// the form-encoding separator the search endpoint expects between words.
func encodeWords(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "+")
}

func joinFields(fields []string) string {
	if len(fields) == 0 {
		fields = DefaultFields()
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(f))
	}
	if len(parts) == 0 {
		return joinFields(DefaultFields())
	}
	return strings.Join(parts, ",")
}

// RawQuery renders the descriptor as an already-encoded query string.
// Parameters appear in a fixed order.
func (d Descriptor) RawQuery() string {
	var b strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}
	add("title", d.Title)
	add("author", d.Author)
	add("isbn", d.ISBN)
	add("fields", d.Fields)
	add("limit", strconv.Itoa(d.Limit))
	add("page", strconv.Itoa(d.Page))
	add("sort", string(d.Sort))
	return b.String()
}

// Key identifies the descriptor in logs, metrics and shared stores.
func (d Descriptor) Key() string {
	return d.RawQuery()
}
