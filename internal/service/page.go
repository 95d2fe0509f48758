package service

import (
	"context"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/metrics"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/page"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/sequence"
)

// Page slices one page out of one category. Callers that pin a generation
// get StaleReportError on mismatch instead of silently reading a snapshot
// they were not paging through.
func (s *Service) Page(ctx context.Context, reportID, category string, pageNumber int, generation string) (*model.PageResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}
	if generation != "" && generation != snap.Generation {
		metrics.StaleReads.Inc()
		return nil, &report.StaleReportError{ReportID: reportID, Generation: generation}
	}

	p, err := page.Slice(snap.Report, snap.Rows, category, pageNumber, s.store.PageSize())
	if err != nil {
		return nil, err
	}

	resp := &model.PageResponse{
		ReportID:   snap.ReportID,
		Generation: snap.Generation,
		Page:       *p,
	}
	if report.IsSequenceCategory(category) {
		highlights := make(map[report.RowLocation]struct{})
		summary := make(map[string]report.SequenceDiagnostic)
		for _, g := range p.Groups {
			res := sequence.Correlate(g)
			snap.Sequence.Add(res)
			for loc := range res.Highlights {
				highlights[loc] = struct{}{}
			}
			for key, diag := range res.Summary {
				summary[key] = diag
			}
		}
		resp.Highlights = sequence.Result{Highlights: highlights}.SortedHighlights()
		if len(summary) > 0 {
			resp.SequenceSummary = summary
		}
	}

	metrics.PagesServed.WithLabelValues(category).Inc()
	return resp, nil
}
