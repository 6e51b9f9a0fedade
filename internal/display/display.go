// Package display turns raw search documents into fixed-shape records for
// presentation. Formatting never fails: every field has a default.
package display

import (
	"strings"

	"bookworm-search/internal/models"
	"bookworm-search/internal/ol"
)

const (
	DefaultTitle       = "Unknown Title"
	DefaultAuthor      = "Unknown Author"
	DefaultYear        = "Unknown Year"
	DefaultPublisher   = "Unknown Publisher"
	DefaultISBN        = "Unknown ISBN"
	DefaultDescription = "No description available"

	// DescriptionLimit is the number of source characters kept from a description.
	DescriptionLimit = 200
	ellipsis         = "..."
	listSeparator    = ", "
)

// DisplayRecord is a search document normalized for display.
// CoverURL is empty when the document carries no cover identifier.
type DisplayRecord struct {
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Year        string `json:"first_publish_year"`
	Publishers  string `json:"publishers"`
	ISBNs       string `json:"isbns"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// HasCover reports whether the record links a cover image.
func (r DisplayRecord) HasCover() bool {
	return r.CoverURL != ""
}

// Format maps a raw document onto a DisplayRecord.
func Format(doc models.SearchDoc) DisplayRecord {
	rec := DisplayRecord{
		Title:       orDefault(doc.Title, DefaultTitle),
		Authors:     joinOrDefault(doc.AuthorName, DefaultAuthor),
		Year:        DefaultYear,
		Publishers:  joinOrDefault(doc.Publisher, DefaultPublisher),
		ISBNs:       joinOrDefault(doc.ISBN, DefaultISBN),
		Description: truncate(descriptionText(doc.Description)),
	}
	if year, ok := doc.FirstPublishYear.Text(); ok {
		rec.Year = year
	}
	if doc.CoverI > 0 {
		rec.CoverURL = ol.CoverURL(doc.CoverI)
	}
	return rec
}

// FormatAll formats every document of a response, preserving order.
func FormatAll(resp models.SearchResponse) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		out = append(out, Format(doc))
	}
	return out
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		values = []string{fallback}
	}
	return strings.Join(values, listSeparator)
}

func descriptionText(d models.Description) string {
	if text, ok := d.Text(); ok {
		return text
	}
	return DefaultDescription
}

// truncate keeps the first DescriptionLimit characters and always appends
// the ellipsis, even when nothing was cut.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) > DescriptionLimit {
		runes = runes[:DescriptionLimit]
	}
	return string(runes) + ellipsis
}

// String renders the record as a human-readable text block.
func (r DisplayRecord) String() string {
	var b strings.Builder
	b.WriteString("Title: " + r.Title + "\n")
	b.WriteString("Author(s): " + r.Authors + "\n")
	b.WriteString("First Published: " + r.Year + "\n")
	b.WriteString("Publisher(s): " + r.Publishers + "\n")
	b.WriteString("ISBN(s): " + r.ISBNs + "\n")
	b.WriteString("Description: " + r.Description + "\n")
	if r.HasCover() {
		b.WriteString("Cover: " + r.CoverURL + "\n")
	}
	return b.String()
}
