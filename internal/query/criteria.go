package query

import "strings"

// MaxLimit is the largest page size the Open Library search endpoint accepts.
const MaxLimit = 100

// DefaultLimit is the number of results requested when the caller does not pick one.
const DefaultLimit = 5

var defaultFields = [...]string{
	"title",
	"author_name",
	"first_publish_year",
	"publisher",
	"isbn",
	"cover_i",
	"description",
}

// DefaultFields returns a fresh copy of the standard search field list.
func DefaultFields() []string {
	out := make([]string, len(defaultFields))
	copy(out, defaultFields[:])
	return out
}

// SortMode selects the ordering the remote service applies to results.
type SortMode string

const (
	SortNone   SortMode = ""
	SortNewest SortMode = "new"
	SortOldest SortMode = "old"
	SortTitle  SortMode = "title"
)

// ParseSort maps user input onto a SortMode. Unrecognized values mean no sort.
func ParseSort(value string) SortMode {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case SortNewest, SortOldest, SortTitle:
		return mode
	default:
		return SortNone
	}
}

// SearchCriteria is the caller-facing, loosely specified search request.
// At least one of Title, Author or ISBN must be non-blank.
type SearchCriteria struct {
	Title  string
	Author string
	ISBN   string
	Fields []string
	Limit  int
	Page   int
	Sort   SortMode
}

// NewCriteria returns criteria populated with the default field list, limit and page.
func NewCriteria() SearchCriteria {
	return SearchCriteria{
		Fields: DefaultFields(),
		Limit:  DefaultLimit,
		Page:   1,
		Sort:   SortNone,
	}
}
