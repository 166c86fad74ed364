package service

import (
	"context"
	"fmt"

	"coordinate-converter/internal/models"
)

// AddressLookupService contains the core business logic for querying
// persisted addresses
type AddressLookupService struct {
	repo AddressRepository
}

// AddressRepository interface for dependency injection
type AddressRepository interface {
	FindAddress(ctx context.Context, latitude, longitude float64) (*models.Address, error)
	SearchAddresses(ctx context.Context, query string) ([]models.Address, error)
}

// NewAddressLookupService creates a new address lookup service
func NewAddressLookupService(repo AddressRepository) *AddressLookupService {
	return &AddressLookupService{repo: repo}
}

// Lookup returns the persisted address resolved from the given coordinate
// pair, or nil when the pair was never converted.
func (s *AddressLookupService) Lookup(ctx context.Context, latitude, longitude float64) (*models.Address, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", longitude)
	}

	address, err := s.repo.FindAddress(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find address: %w", err)
	}

	return address, nil
}

// Search returns persisted addresses whose street name or city matches the
// query text.
func (s *AddressLookupService) Search(ctx context.Context, query string) ([]models.Address, error) {
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty")
	}

	addresses, err := s.repo.SearchAddresses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search addresses: %w", err)
	}

	return addresses, nil
}
