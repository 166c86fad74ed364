package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"coordinate-converter/internal/maps"
	"coordinate-converter/internal/models"
	"coordinate-converter/internal/repository"
)

// Resolver interface for dependency injection
type Resolver interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]models.AddressComponent, error)
}

// RecordStore interface for dependency injection
type RecordStore interface {
	SaveResolvedAddress(ctx context.Context, coordinate models.CoordinateRecord, address models.StructuredAddress) error
}

// BatchSummary counts the terminal state of every processed row. Aborted is
// set when the resolver reported a batch-fatal failure; rows after the
// failing one were never attempted.
type BatchSummary struct {
	Attempted           int
	Persisted           int
	SkippedNotFound     int
	SkippedEmptyAddress int
	SkippedIncomplete   int
	SkippedConflict     int
	SkippedStoreFailure int
	Aborted             bool
}

// ConverterService drives each coordinate row through resolution,
// extraction, validation and persistence.
type ConverterService struct {
	resolver Resolver
	store    RecordStore
}

// NewConverterService creates a new converter service.
func NewConverterService(resolver Resolver, store RecordStore) *ConverterService {
	return &ConverterService{resolver: resolver, store: store}
}

// Run processes the rows sequentially, in input order. Per-row failures are
// counted and logged but never stop the batch; only a resolver API failure
// aborts, in which case the returned error is non-nil and the summary covers
// the rows attempted before the failure.
func (s *ConverterService) Run(ctx context.Context, records []models.CoordinateRecord) (BatchSummary, error) {
	var summary BatchSummary

	for _, record := range records {
		summary.Attempted++

		components, err := s.resolver.ReverseGeocode(ctx, record.Latitude, record.Longitude)
		if err != nil {
			if errors.Is(err, maps.ErrNoResults) {
				summary.SkippedNotFound++
				log.Warn().
					Float64("latitude", record.Latitude).
					Float64("longitude", record.Longitude).
					Msg("address couldn't be resolved: reverse geocode returned no results")
				continue
			}
			// Credential, quota or transport failure: it will recur for
			// every remaining row, so stop issuing lookups.
			summary.Aborted = true
			log.Error().
				Err(err).
				Float64("latitude", record.Latitude).
				Float64("longitude", record.Longitude).
				Msg("reverse geocode failed, aborting batch")
			return summary, fmt.Errorf("service: reverse geocode aborted batch: %w", err)
		}

		address := ExtractAddress(components)
		if address.Empty() {
			summary.SkippedEmptyAddress++
			log.Debug().
				Float64("latitude", record.Latitude).
				Float64("longitude", record.Longitude).
				Msg("no address component recognized, skipping row")
			continue
		}

		latitude, longitude := record.Latitude, record.Longitude
		address.Latitude = &latitude
		address.Longitude = &longitude

		if !IsComplete(address) {
			summary.SkippedIncomplete++
			log.Debug().
				Float64("latitude", record.Latitude).
				Float64("longitude", record.Longitude).
				Msg("incomplete address, skipping row")
			continue
		}

		if err := s.store.SaveResolvedAddress(ctx, record, address); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				summary.SkippedConflict++
				log.Error().
					Err(err).
					Float64("latitude", record.Latitude).
					Float64("longitude", record.Longitude).
					Msg("record already exists, skipping row")
			} else {
				summary.SkippedStoreFailure++
				log.Error().
					Err(err).
					Float64("latitude", record.Latitude).
					Float64("longitude", record.Longitude).
					Msg("failed to save record, skipping row")
			}
			continue
		}

		summary.Persisted++
		log.Info().
			Float64("latitude", record.Latitude).
			Float64("longitude", record.Longitude).
			Str("street_name", *address.StreetName).
			Str("city", *address.City).
			Msg("address saved to database")
	}

	return summary, nil
}
