package models

// SearchDoc is a single Open Library search result. The service does not
// guarantee any field is present, so every field is optional.
type SearchDoc struct {
	Key              string      `json:"key,omitempty"`
	Title            string      `json:"title,omitempty"`
	AuthorKey        []string    `json:"author_key,omitempty"`
	AuthorName       []string    `json:"author_name,omitempty"`
	FirstPublishYear PublishYear `json:"first_publish_year"`
	Publisher        []string    `json:"publisher,omitempty"`
	ISBN             []string    `json:"isbn,omitempty"`
	CoverI           int         `json:"cover_i,omitempty"`
	CoverEditionKey  string      `json:"cover_edition_key,omitempty"`
	EditionCount     int         `json:"edition_count,omitempty"`
	Language         []string    `json:"language,omitempty"`
	Description      Description `json:"description"`
}

// SearchResponse represents the Open Library search response.
type SearchResponse struct {
	NumFound      int         `json:"numFound,omitempty"`
	NumFoundExact bool        `json:"numFoundExact,omitempty"`
	Start         int         `json:"start,omitempty"`
	Q             string      `json:"q,omitempty"`
	Docs          []SearchDoc `json:"docs"`
}
