// Package htmltable locates and extracts HTML tables from scraped
// documents. It is the boundary the normalizers consume: given parsed
// markup and a Locator, return the matching tables as plain string grids.
//
// Both scraped sites surround the interesting table with look-alike
// tables, so Find requires exactly one match; zero and more-than-one both
// surface as ErrCantFindTheRightTable, which callers use as a signal to try
// another hypothesis (a swapped home/away URL) rather than a fatal abort.
package htmltable

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrCantFindTheRightTable is returned by Find when a locator matches zero
// tables or more than one.
var ErrCantFindTheRightTable = errors.New("can't find the right table")

// Table is an extracted HTML table: a header row and the data rows below
// it, all cells trimmed.
type Table struct {
	Header []string
	Rows   [][]string
}

// Locator describes the table to extract. All set fields must match.
type Locator struct {
	// ID requires the table's id attribute to equal this value.
	ID string
	// Attrs requires each attribute to be present with the given value.
	Attrs map[string]string
	// Contains requires the table's text to contain this substring.
	Contains string
	// SkipRows drops this many rows immediately after the header row.
	// The movement tables carry sub-header noise rows there.
	SkipRows int
}

// Parse wraps raw markup into a goquery document.
func Parse(markup []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Extract returns every table in doc matching the locator.
func Extract(doc *goquery.Document, loc Locator) []Table {
	var tables []Table
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		if !matches(sel, loc) {
			return
		}
		tables = append(tables, build(sel, loc.SkipRows))
	})
	return tables
}

// Find returns the single table in doc matching the locator, or
// ErrCantFindTheRightTable when there are zero or several.
func Find(doc *goquery.Document, loc Locator) (Table, error) {
	tables := Extract(doc, loc)
	if len(tables) != 1 {
		return Table{}, fmt.Errorf("%w: %d matches", ErrCantFindTheRightTable, len(tables))
	}
	return tables[0], nil
}

func matches(sel *goquery.Selection, loc Locator) bool {
	if loc.ID != "" {
		if id, _ := sel.Attr("id"); id != loc.ID {
			return false
		}
	}
	for attr, want := range loc.Attrs {
		if got, ok := sel.Attr(attr); !ok || got != want {
			return false
		}
	}
	if loc.Contains != "" && !strings.Contains(sel.Text(), loc.Contains) {
		return false
	}
	return true
}

func build(sel *goquery.Selection, skipRows int) Table {
	var t Table
	sel.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := rowCells(row)
		switch {
		case i == 0:
			t.Header = cells
		case i <= skipRows:
			// sub-header noise row
		default:
			t.Rows = append(t.Rows, cells)
		}
	})
	return t
}

func rowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.ReplaceAll(cell.Text(), " ", " ")
		cells = append(cells, strings.TrimSpace(text))
	})
	return cells
}

// Column returns the index of the named header column, or an error when it
// is absent.
func (t Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column %q in table header %v", name, t.Header)
}

// Cell returns row's value in the named column, tolerating short rows.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
