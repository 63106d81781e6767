package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boardfarm/internal/model"
	"boardfarm/pkg/logger"
	"boardfarm/pkg/store/mysql"
	storemodel "boardfarm/pkg/store/mysql/model"
)

// RelayService manages power relay inventory
type RelayService struct {
	relayRepo *mysql.RelayRepository
}

// NewRelayService creates a new relay service
func NewRelayService(relayRepo *mysql.RelayRepository) *RelayService {
	return &RelayService{relayRepo: relayRepo}
}

// Create registers a new relay
func (s *RelayService) Create(ctx context.Context, req *model.CreateRelayRequest) (*storemodel.Relay, error) {
	modelType := storemodel.RelayModelType(req.ModelType)
	if !modelType.Valid() {
		return nil, NewValidationError("model_type", fmt.Sprintf("unknown relay model type: %s", req.ModelType))
	}

	status := storemodel.RelayStatusInactive
	if req.Status != "" {
		status = storemodel.RelayStatus(req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown relay status: %s", req.Status))
		}
	}

	if !storemodel.ValidMACAddress(req.MACAddress) {
		return nil, NewValidationError("mac_address", fmt.Sprintf("malformed MAC address: %s", req.MACAddress))
	}
	if req.PortCount < 1 || req.PortCount > 100 {
		return nil, NewValidationError("port_count", "port count must be between 1 and 100")
	}

	relay := &storemodel.Relay{
		RelayName:  req.RelayName,
		ModelType:  modelType,
		Status:     status,
		Location:   req.Location,
		IPAddress:  req.IPAddress,
		MACAddress: req.MACAddress,
		PortCount:  req.PortCount,
	}

	if err := s.relayRepo.Create(ctx, relay); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateFieldError(ctx, relay)
		}
		return nil, fmt.Errorf("failed to create relay: %w", err)
	}

	logger.InfoCtx(ctx, "relay created: %s (%s)", relay.RelayName, relay.ID)
	return relay, nil
}

// duplicateFieldError narrows a unique violation down to the clashing field
func (s *RelayService) duplicateFieldError(ctx context.Context, relay *storemodel.Relay) error {
	if existing, err := s.relayRepo.GetByName(ctx, relay.RelayName); err == nil && existing != nil && existing.ID != relay.ID {
		return NewValidationError("relay_name", fmt.Sprintf("relay name %s already exists", relay.RelayName))
	}
	if existing, err := s.relayRepo.GetByIP(ctx, relay.IPAddress); err == nil && existing != nil && existing.ID != relay.ID {
		return NewValidationError("ip_address", fmt.Sprintf("IP address %s already in use", relay.IPAddress))
	}
	if existing, err := s.relayRepo.GetByMAC(ctx, relay.MACAddress); err == nil && existing != nil && existing.ID != relay.ID {
		return NewValidationError("mac_address", fmt.Sprintf("MAC address %s already in use", relay.MACAddress))
	}
	return NewValidationError("relay", "duplicate value for a unique relay field")
}

// Get retrieves a relay by ID
func (s *RelayService) Get(ctx context.Context, id string) (*storemodel.Relay, error) {
	relay, err := s.relayRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if relay == nil {
		return nil, ErrNotFound
	}
	return relay, nil
}

// List retrieves relays, optionally filtered by status
func (s *RelayService) List(ctx context.Context, status string) ([]*storemodel.Relay, error) {
	if status != "" && !storemodel.RelayStatus(status).Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown relay status: %s", status))
	}
	return s.relayRepo.List(ctx, storemodel.RelayStatus(status))
}

// Update modifies a relay
func (s *RelayService) Update(ctx context.Context, id string, req *model.UpdateRelayRequest) (*storemodel.Relay, error) {
	relay, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RelayName != nil {
		relay.RelayName = *req.RelayName
	}
	if req.ModelType != nil {
		modelType := storemodel.RelayModelType(*req.ModelType)
		if !modelType.Valid() {
			return nil, NewValidationError("model_type", fmt.Sprintf("unknown relay model type: %s", *req.ModelType))
		}
		relay.ModelType = modelType
	}
	if req.Status != nil {
		status := storemodel.RelayStatus(*req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown relay status: %s", *req.Status))
		}
		relay.Status = status
	}
	if req.Location != nil {
		relay.Location = *req.Location
	}
	if req.IPAddress != nil {
		relay.IPAddress = *req.IPAddress
	}
	if req.MACAddress != nil {
		if !storemodel.ValidMACAddress(*req.MACAddress) {
			return nil, NewValidationError("mac_address", fmt.Sprintf("malformed MAC address: %s", *req.MACAddress))
		}
		relay.MACAddress = *req.MACAddress
	}
	if req.PortCount != nil {
		if *req.PortCount < 1 || *req.PortCount > 100 {
			return nil, NewValidationError("port_count", "port count must be between 1 and 100")
		}
		relay.PortCount = *req.PortCount
	}

	if err := s.relayRepo.Update(ctx, relay); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateFieldError(ctx, relay)
		}
		return nil, fmt.Errorf("failed to update relay: %w", err)
	}
	return relay, nil
}

// MarkChecked records the time an external checker last reached the relay
func (s *RelayService) MarkChecked(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.relayRepo.UpdateLastChecked(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark relay checked: %w", err)
	}
	return nil
}

// Delete removes a relay. Boards wired to it are detached (relay reference
// nulled), never deleted.
func (s *RelayService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.relayRepo.DeleteWithBoardDetach(ctx, id); err != nil {
		return fmt.Errorf("failed to delete relay: %w", err)
	}
	logger.InfoCtx(ctx, "relay deleted: %s", id)
	return nil
}
