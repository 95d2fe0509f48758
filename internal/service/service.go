// Package service orchestrates the report pipeline: ingestion through the
// compact codec, paged reads over immutable snapshots, sequence
// correlation and the correction ledger's flush handover.
package service

import (
	"errors"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/config"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/ledger"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/metrics"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/store"
)

// Service provides the business logic for the error report API.
type Service struct {
	store   *store.Store
	persist ledger.Persister
	cfg     *config.Config
	enc     *compact.Encoder
	dec     *compact.Decoder
}

// New wires the service with its snapshot store and the persistence
// collaborator that receives flushed corrections.
func New(st *store.Store, persist ledger.Persister, cfg *config.Config) *Service {
	return &Service{
		store:   st,
		persist: persist,
		cfg:     cfg,
		enc:     &compact.Encoder{Codec: compact.GzipCodec{}, MinSize: cfg.Codec.MinCompressBytes},
		dec:     &compact.Decoder{Codec: compact.GzipCodec{}, StrictFieldMap: cfg.Codec.StrictFieldMap},
	}
}

// Seal applies the transport compression policy to an already-serialized
// response body.
func (s *Service) Seal(text string) (compact.Payload, error) {
	return s.enc.Seal(text)
}

// snapshot resolves the current generation of a report, counting reads
// that hit a retired one.
func (s *Service) snapshot(reportID string) (*store.Snapshot, error) {
	snap, err := s.store.Snapshot(reportID)
	if err != nil {
		var stale *report.StaleReportError
		if errors.As(err, &stale) {
			metrics.StaleReads.Inc()
		}
		return nil, err
	}
	return snap, nil
}
