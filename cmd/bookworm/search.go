package main

import (
	"encoding/json"
	"fmt"
	"io"

	"bookworm-search/internal/display"
	"bookworm-search/internal/logging"
	"bookworm-search/internal/models"
	"bookworm-search/internal/query"
)

// SearchCmd runs a single search from flags.
type SearchCmd struct {
	Title  string   `short:"t" help:"Book title"`
	Author string   `short:"a" help:"Author name"`
	ISBN   string   `short:"i" name:"isbn" help:"ISBN"`
	Fields []string `help:"Fields to request from the catalog" sep:","`
	Limit  int      `short:"n" help:"Maximum number of results (capped at 100)" default:"5"`
	Page   int      `help:"Result page" default:"1"`
	Sort   string   `help:"Sort order (new, old, title, none)" enum:"new,old,title,none" default:"none"`
	JSON   bool     `help:"Print display records as JSON"`
}

func (c *SearchCmd) criteria() query.SearchCriteria {
	crit := query.NewCriteria()
	crit.Title = c.Title
	crit.Author = c.Author
	crit.ISBN = c.ISBN
	if len(c.Fields) > 0 {
		crit.Fields = append([]string(nil), c.Fields...)
	}
	crit.Limit = c.Limit
	crit.Page = c.Page
	crit.Sort = query.ParseSort(c.Sort)
	return crit
}

// Run executes the search and prints the results.
func (c *SearchCmd) Run(app *appContext) error {
	return runSearch(app, c.criteria(), c.JSON)
}

func runSearch(app *appContext, crit query.SearchCriteria, asJSON bool) error {
	resp, err := app.searcher.Search(app.ctx, crit)
	if err != nil {
		logging.FromContext(app.ctx).Debug("search failed", "err", err)
		return describeError(err)
	}
	if asJSON {
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(display.FormatAll(resp))
	}
	printResults(app.stdout, resp)
	return nil
}

func printResults(w io.Writer, resp models.SearchResponse) {
	fmt.Fprintln(w, "\nSearch Results:")
	if len(resp.Docs) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}
	for i, rec := range display.FormatAll(resp) {
		fmt.Fprintf(w, "\nResult #%d:\n", i+1)
		fmt.Fprintln(w, rec.String())
	}
}
