package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"boardfarm/internal/model"
	"boardfarm/pkg/logger"
	"boardfarm/pkg/store/mysql"
	storemodel "boardfarm/pkg/store/mysql/model"
)

// CapabilityService manages the capability catalog
type CapabilityService struct {
	capabilityRepo *mysql.CapabilityRepository
}

// NewCapabilityService creates a new capability service
func NewCapabilityService(capabilityRepo *mysql.CapabilityRepository) *CapabilityService {
	return &CapabilityService{capabilityRepo: capabilityRepo}
}

// Create registers a new capability
func (s *CapabilityService) Create(ctx context.Context, req *model.CreateCapabilityRequest) (*storemodel.Capability, error) {
	name := storemodel.CapabilityName(req.Name)
	if !name.Valid() {
		return nil, NewValidationError("name", fmt.Sprintf("unknown capability name: %s", req.Name))
	}

	capability := &storemodel.Capability{
		Name:        name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		capability.IsActive = *req.IsActive
	}

	if err := s.capabilityRepo.Create(ctx, capability); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("name", fmt.Sprintf("capability %s already exists", req.Name))
		}
		return nil, fmt.Errorf("failed to create capability: %w", err)
	}

	logger.InfoCtx(ctx, "capability created: %s (%s)", capability.Name, capability.ID)
	return capability, nil
}

// Get retrieves a capability by ID
func (s *CapabilityService) Get(ctx context.Context, id string) (*storemodel.Capability, error) {
	capability, err := s.capabilityRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if capability == nil {
		return nil, ErrNotFound
	}
	return capability, nil
}

// List retrieves capabilities, optionally narrowed to one name
func (s *CapabilityService) List(ctx context.Context, name string) ([]*storemodel.Capability, error) {
	if name == "" {
		return s.capabilityRepo.List(ctx)
	}
	capName := storemodel.CapabilityName(name)
	if !capName.Valid() {
		return nil, NewValidationError("name", fmt.Sprintf("unknown capability name: %s", name))
	}
	capability, err := s.capabilityRepo.GetByName(ctx, capName)
	if err != nil {
		return nil, err
	}
	if capability == nil {
		return []*storemodel.Capability{}, nil
	}
	return []*storemodel.Capability{capability}, nil
}

// Update modifies the mutable fields of a capability. The name itself is
// fixed at creation.
func (s *CapabilityService) Update(ctx context.Context, id string, req *model.UpdateCapabilityRequest) (*storemodel.Capability, error) {
	capability, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		capability.Description = *req.Description
	}
	if req.IsActive != nil {
		capability.IsActive = *req.IsActive
	}

	if err := s.capabilityRepo.Update(ctx, capability); err != nil {
		return nil, fmt.Errorf("failed to update capability: %w", err)
	}
	return capability, nil
}

// Delete removes a capability from the catalog and from every board using it
func (s *CapabilityService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.capabilityRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete capability: %w", err)
	}
	logger.InfoCtx(ctx, "capability deleted: %s", id)
	return nil
}
