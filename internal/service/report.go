package service

import (
	"context"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/sequence"
)

func (s *Service) Metadata(ctx context.Context, reportID string) (*model.MetadataResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}
	return &model.MetadataResponse{
		ReportID:   snap.ReportID,
		Generation: snap.Generation,
		Metadata:   *snap.Metadata,
	}, nil
}

// Export returns the stored report in its original compact transport form.
func (s *Service) Export(ctx context.Context, reportID string) (*model.ExportResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}
	return &model.ExportResponse{
		ReportID:   snap.ReportID,
		Generation: snap.Generation,
		Compressed: snap.Encoded.Compressed,
		Payload:    snap.Encoded.Body,
	}, nil
}

// Sequence correlates every sequence category of the report and returns
// the accumulated whole-report highlights and summary.
func (s *Service) Sequence(ctx context.Context, reportID string) (*model.SequenceResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}

	for _, c := range snap.Report.Categories {
		if !report.IsSequenceCategory(c.Name) {
			continue
		}
		for _, g := range c.Groups {
			snap.Sequence.Add(sequence.Correlate(g))
		}
	}

	res := snap.Sequence.Snapshot()
	return &model.SequenceResponse{
		ReportID:   snap.ReportID,
		Generation: snap.Generation,
		Highlights: res.SortedHighlights(),
		Summary:    res.Summary,
	}, nil
}
