// Package page computes per-category metadata and slices an immutable
// report into bounded, self-contained views. The unit of pagination is
// the logical error: one physical row for ordinary categories, one run of
// up to four consecutive rows for sequence categories, so a page boundary
// can never split a sequence run.
package page

import (
	"strconv"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// Page is one slice of one category, carrying the groups on the page and
// exactly the row data those groups reference. Pages travel in the full
// structural form; field-map abbreviation is reserved for whole-report
// transport.
type Page struct {
	CategoryName string              `json:"category_name"`
	PageNumber   int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	ErrorsOnPage int                 `json:"errors_on_page"`
	Groups       []report.ErrorGroup `json:"error_groups"`
	Rows         report.RowDataMap   `json:"rows_data"`
}

// CategoryMeta is the per-category line of the metadata listing.
type CategoryMeta struct {
	Name        string `json:"name"`
	TotalErrors int    `json:"total_errors"`
	TotalPages  int    `json:"total_pages"`
}

// Metadata is computed once per report generation and served before any
// page is fetched.
type Metadata struct {
	TotalErrors     int            `json:"total_errors"`
	ErrorRows       int            `json:"error_rows"`
	ErrorCategories int            `json:"error_categories"`
	Categories      []CategoryMeta `json:"categories"`
}

// TotalPages returns ceil(logicalErrors / pageSize), zero when the
// category is empty.
func TotalPages(logicalErrors, pageSize int) int {
	if logicalErrors <= 0 || pageSize <= 0 {
		return 0
	}
	return (logicalErrors + pageSize - 1) / pageSize
}

// ComputeMetadata derives the category listing for a report. Aggregate
// counts come from the validated summary; per-category totals are
// recomputed because they drive the page math.
func ComputeMetadata(r *report.ErrorReport, pageSize int) *Metadata {
	m := &Metadata{
		TotalErrors:     r.Summary.TotalErrors,
		ErrorRows:       r.Summary.ErrorRows,
		ErrorCategories: len(r.Categories),
		Categories:      make([]CategoryMeta, 0, len(r.Categories)),
	}
	for _, c := range r.Categories {
		n := report.CategoryLogicalErrors(c)
		m.Categories = append(m.Categories, CategoryMeta{
			Name:        c.Name,
			TotalErrors: n,
			TotalPages:  TotalPages(n, pageSize),
		})
	}
	return m
}

// Slice returns one page of a category. A page number outside
// [1, TotalPages] is a NotFoundError, never an empty page, so callers can
// tell a bad request apart from a page with no errors. Slicing is a pure
// read: the same arguments against the same report always return the same
// page.
func Slice(r *report.ErrorReport, rows report.RowDataMap, category string, pageNumber, pageSize int) (*Page, error) {
	var cat *report.ErrorCategory
	for i := range r.Categories {
		if r.Categories[i].Name == category {
			cat = &r.Categories[i]
			break
		}
	}
	if cat == nil {
		return nil, &report.NotFoundError{Resource: "category", Key: category}
	}

	sequence := report.IsSequenceCategory(cat.Name)
	total := report.CategoryLogicalErrors(*cat)
	totalPages := TotalPages(total, pageSize)
	if pageNumber < 1 || pageNumber > totalPages {
		return nil, &report.NotFoundError{Resource: "page", Key: strconv.Itoa(pageNumber)}
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	p := &Page{
		CategoryName: cat.Name,
		PageNumber:   pageNumber,
		TotalPages:   totalPages,
		ErrorsOnPage: end - start,
		Groups:       make([]report.ErrorGroup, 0),
		Rows:         make(report.RowDataMap),
	}

	consumed := 0
	for _, g := range cat.Groups {
		units := report.GroupLogicalErrors(g, sequence)
		if consumed+units <= start {
			consumed += units
			continue
		}
		if consumed >= end {
			break
		}
		from := start - consumed
		if from < 0 {
			from = 0
		}
		to := end - consumed
		if to > units {
			to = units
		}
		rowFrom, rowTo := from, to
		if sequence {
			rowFrom = from * report.SequenceRunLength
			rowTo = to * report.SequenceRunLength
			if rowTo > len(g.Rows) {
				rowTo = len(g.Rows)
			}
		}
		sub := report.ErrorGroup{
			Reason: g.Reason,
			Rows:   append([]report.ErrorRow(nil), g.Rows[rowFrom:rowTo]...),
		}
		p.Groups = append(p.Groups, sub)
		for _, row := range sub.Rows {
			if idx, ok := row.Location.Index(); ok {
				if record, ok := rows[idx]; ok {
					p.Rows[idx] = record
				}
			}
		}
		consumed += units
	}
	return p, nil
}
