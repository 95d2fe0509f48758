package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/ledger"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/metrics"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/validation"
)

// AddCorrections records pending edits in the ledger of the report's
// current generation. Re-adding the same value is a no-op and restoring a
// row's original value removes the entry, so the ledger only ever holds
// real differences.
func (s *Service) AddCorrections(ctx context.Context, reportID string, corrections []report.Correction) (*model.CorrectionsResponse, error) {
	if len(corrections) == 0 {
		return nil, &model.APIError{
			Status: http.StatusBadRequest,
			Code:   model.CodeInvalidArgument,
			Msg:    "at least one correction is required",
		}
	}
	for _, c := range corrections {
		if err := validation.ValidateColumn(c.Column); err != nil {
			return nil, &model.APIError{
				Status: http.StatusBadRequest,
				Code:   model.CodeInvalidArgument,
				Msg:    err.Error(),
			}
		}
	}

	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}
	for _, c := range corrections {
		snap.Ledger.Add(c)
	}
	return &model.CorrectionsResponse{
		ReportID: snap.ReportID,
		Pending:  snap.Ledger.Len(),
		State:    snap.Ledger.State().String(),
	}, nil
}

func (s *Service) ListCorrections(ctx context.Context, reportID string) (*model.ListCorrectionsResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}
	return &model.ListCorrectionsResponse{
		ReportID:    snap.ReportID,
		State:       snap.Ledger.State().String(),
		Corrections: snap.Ledger.Entries(),
	}, nil
}

// Flush hands the pending ledger to the persister. When anything was
// saved the flushed generation is retired, so later page reads fail stale
// instead of showing rows the corrections already changed.
func (s *Service) Flush(ctx context.Context, reportID string) (*model.FlushResponse, error) {
	snap, err := s.snapshot(reportID)
	if err != nil {
		return nil, err
	}

	saved, err := snap.Ledger.Flush(ctx, s.persist)
	if err != nil {
		if errors.Is(err, ledger.ErrFlushInProgress) {
			return nil, err
		}
		metrics.FlushFailures.Inc()
		return nil, fmt.Errorf("failed to flush corrections for report %s: %w", reportID, err)
	}

	stale := false
	if saved > 0 {
		metrics.CorrectionsFlushed.Add(float64(saved))
		if err := s.store.Invalidate(reportID, snap.Generation); err != nil {
			return nil, fmt.Errorf("failed to retire generation for report %s: %w", reportID, err)
		}
		stale = true
	}
	return &model.FlushResponse{
		ReportID:        reportID,
		Saved:           saved,
		State:           snap.Ledger.State().String(),
		GenerationStale: stale,
	}, nil
}
