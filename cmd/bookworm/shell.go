package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"bookworm-search/internal/query"
)

// ShellCmd runs the interactive search menu.
type ShellCmd struct{}

// prompter reads one line of input. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// Run starts the menu on the terminal.
func (c *ShellCmd) Run(app *appContext) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return runShell(app, line)
}

const menu = `
Open Library Book Search
1. Search by Title
2. Search by Author
3. Search by ISBN
4. Advanced Search
5. Exit`

// runShell loops over the menu until the user exits or input ends.
func runShell(app *appContext, in prompter) error {
	out := app.stdout
	for {
		fmt.Fprintln(out, menu)
		choice, err := in.Prompt("Enter your choice (1-5): ")
		if err != nil {
			return endOfInput(err)
		}
		choice = strings.TrimSpace(choice)
		if choice == "5" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		crit, ok, err := readCriteria(out, in, choice)
		if err != nil {
			return endOfInput(err)
		}
		if !ok {
			continue
		}

		if err := runSearch(app, crit, false); err != nil {
			fmt.Fprintf(out, "Search failed: %v\n", err)
		}
		if _, err := in.Prompt("\nPress Enter to continue..."); err != nil {
			return endOfInput(err)
		}
	}
}

// readCriteria prompts for the inputs of one search choice. ok is false when
// the choice was invalid or required input was missing.
func readCriteria(out io.Writer, in prompter, choice string) (crit query.SearchCriteria, ok bool, err error) {
	crit = query.NewCriteria()
	switch choice {
	case "1":
		if crit.Title, err = required(out, in, "Enter book title: ", "Title"); err != nil || crit.Title == "" {
			return crit, false, err
		}
		if crit.Sort, err = readSort(in); err != nil {
			return crit, false, err
		}
	case "2":
		if crit.Author, err = required(out, in, "Enter author name: ", "Author"); err != nil || crit.Author == "" {
			return crit, false, err
		}
	case "3":
		if crit.ISBN, err = required(out, in, "Enter ISBN: ", "ISBN"); err != nil || crit.ISBN == "" {
			return crit, false, err
		}
	case "4":
		for _, p := range []struct {
			prompt string
			dst    *string
		}{
			{"Enter title (optional): ", &crit.Title},
			{"Enter author (optional): ", &crit.Author},
			{"Enter ISBN (optional): ", &crit.ISBN},
		} {
			v, err := in.Prompt(p.prompt)
			if err != nil {
				return crit, false, err
			}
			*p.dst = strings.TrimSpace(v)
		}
		limit, err := in.Prompt(fmt.Sprintf("Max results (default %d): ", query.DefaultLimit))
		if err != nil {
			return crit, false, err
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(limit)); convErr == nil && n >= 0 {
			crit.Limit = n
		}
		if crit.Sort, err = readSort(in); err != nil {
			return crit, false, err
		}
		if crit.Title == "" && crit.Author == "" && crit.ISBN == "" {
			fmt.Fprintln(out, "At least one search parameter is required")
			return crit, false, nil
		}
	default:
		fmt.Fprintln(out, "Invalid choice, please try again")
		return crit, false, nil
	}
	return crit, true, nil
}

func required(out io.Writer, in prompter, prompt, name string) (string, error) {
	v, err := in.Prompt(prompt)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		fmt.Fprintf(out, "%s cannot be empty\n", name)
	}
	return v, nil
}

func readSort(in prompter) (query.SortMode, error) {
	v, err := in.Prompt("Sort by (new/old/title/none): ")
	if err != nil {
		return query.SortNone, err
	}
	return query.ParseSort(v), nil
}

// endOfInput treats Ctrl-C and Ctrl-D as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return nil
	}
	return err
}
