package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/metrics"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/validation"
)

// Ingest decodes and validates a compact report payload and stores it as
// a fresh generation. Nothing is stored when any step fails, so a
// rejected payload never leaves a half-written report behind.
func (s *Service) Ingest(ctx context.Context, req model.IngestRequest) (*model.IngestResponse, error) {
	if req.Payload == "" {
		return nil, &model.APIError{
			Status: http.StatusBadRequest,
			Code:   model.CodeInvalidArgument,
			Msg:    "payload is required",
		}
	}
	if req.ReportID != "" {
		if err := validation.ValidateReportID(req.ReportID); err != nil {
			return nil, &model.APIError{
				Status: http.StatusBadRequest,
				Code:   model.CodeInvalidArgument,
				Msg:    err.Error(),
			}
		}
	}

	encoded := compact.Payload{Body: req.Payload, Compressed: req.Compressed}
	decoded, err := s.dec.Decode(encoded)
	if err != nil {
		return nil, err
	}
	if err := decoded.Report.Validate(); err != nil {
		return nil, err
	}

	reportID := req.ReportID
	if reportID == "" {
		reportID = uuid.New().String()
	}
	snap, err := s.store.Put(reportID, decoded.Report, decoded.Rows, encoded)
	if err != nil {
		return nil, err
	}

	metrics.ReportsIngested.Inc()
	form := "plain"
	if req.Compressed {
		form = "compressed"
	}
	metrics.PayloadBytes.WithLabelValues(form).Observe(float64(len(req.Payload)))

	return &model.IngestResponse{
		ReportID:        snap.ReportID,
		Generation:      snap.Generation,
		TotalErrors:     snap.Metadata.TotalErrors,
		ErrorRows:       snap.Metadata.ErrorRows,
		ErrorCategories: snap.Metadata.ErrorCategories,
		Warnings:        decoded.Warnings,
	}, nil
}
