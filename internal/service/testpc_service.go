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

// TestPCService manages test PC inventory
type TestPCService struct {
	testPCRepo *mysql.TestPCRepository
}

// NewTestPCService creates a new test PC service
func NewTestPCService(testPCRepo *mysql.TestPCRepository) *TestPCService {
	return &TestPCService{testPCRepo: testPCRepo}
}

// Create registers a new test PC
func (s *TestPCService) Create(ctx context.Context, req *model.CreateTestPCRequest) (*storemodel.TestPC, error) {
	osVersion := storemodel.OSVersion(req.OSVersion)
	if !osVersion.Valid() {
		return nil, NewValidationError("os_version", fmt.Sprintf("unknown OS version: %s", req.OSVersion))
	}

	status := storemodel.TestPCStatusOffline
	if req.Status != "" {
		status = storemodel.TestPCStatus(req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown test pc status: %s", req.Status))
		}
	}

	pc := &storemodel.TestPC{
		Hostname:       req.Hostname,
		IPAddress:      req.IPAddress,
		DomainName:     req.DomainName,
		Status:         status,
		OSVersion:      osVersion,
		DiskMountPoint: req.DiskMountPoint,
		Location:       req.Location,
		Comment:        req.Comment,
	}

	if err := s.testPCRepo.Create(ctx, pc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateFieldError(ctx, pc)
		}
		return nil, fmt.Errorf("failed to create test pc: %w", err)
	}

	logger.InfoCtx(ctx, "test pc created: %s (%s)", pc.Hostname, pc.ID)
	return pc, nil
}

// duplicateFieldError narrows a unique violation down to the clashing field
func (s *TestPCService) duplicateFieldError(ctx context.Context, pc *storemodel.TestPC) error {
	if existing, err := s.testPCRepo.GetByHostname(ctx, pc.Hostname); err == nil && existing != nil && existing.ID != pc.ID {
		return NewValidationError("hostname", fmt.Sprintf("hostname %s already exists", pc.Hostname))
	}
	if existing, err := s.testPCRepo.GetByIP(ctx, pc.IPAddress); err == nil && existing != nil && existing.ID != pc.ID {
		return NewValidationError("ip_address", fmt.Sprintf("IP address %s already in use", pc.IPAddress))
	}
	return NewValidationError("test_pc", "duplicate value for a unique test pc field")
}

// Get retrieves a test PC by ID
func (s *TestPCService) Get(ctx context.Context, id string) (*storemodel.TestPC, error) {
	pc, err := s.testPCRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, ErrNotFound
	}
	return pc, nil
}

// List retrieves test PCs, optionally filtered by status
func (s *TestPCService) List(ctx context.Context, status string) ([]*storemodel.TestPC, error) {
	if status != "" && !storemodel.TestPCStatus(status).Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown test pc status: %s", status))
	}
	return s.testPCRepo.List(ctx, storemodel.TestPCStatus(status))
}

// Update modifies a test PC
func (s *TestPCService) Update(ctx context.Context, id string, req *model.UpdateTestPCRequest) (*storemodel.TestPC, error) {
	pc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Hostname != nil {
		pc.Hostname = *req.Hostname
	}
	if req.IPAddress != nil {
		pc.IPAddress = *req.IPAddress
	}
	if req.DomainName != nil {
		pc.DomainName = req.DomainName
	}
	if req.Status != nil {
		status := storemodel.TestPCStatus(*req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown test pc status: %s", *req.Status))
		}
		pc.Status = status
	}
	if req.OSVersion != nil {
		osVersion := storemodel.OSVersion(*req.OSVersion)
		if !osVersion.Valid() {
			return nil, NewValidationError("os_version", fmt.Sprintf("unknown OS version: %s", *req.OSVersion))
		}
		pc.OSVersion = osVersion
	}
	if req.DiskMountPoint != nil {
		pc.DiskMountPoint = *req.DiskMountPoint
	}
	if req.Location != nil {
		pc.Location = *req.Location
	}
	if req.Comment != nil {
		pc.Comment = *req.Comment
	}

	if err := s.testPCRepo.Update(ctx, pc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateFieldError(ctx, pc)
		}
		return nil, fmt.Errorf("failed to update test pc: %w", err)
	}
	return pc, nil
}

// Heartbeat records a liveness ping from the PC agent
func (s *TestPCService) Heartbeat(ctx context.Context, id string) error {
	err := s.testPCRepo.UpdateHeartbeat(ctx, id, time.Now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Delete removes a test PC. Its stats history is deleted with it; boards that
// reference it are detached, never deleted.
func (s *TestPCService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.testPCRepo.DeleteWithDependents(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test pc: %w", err)
	}
	logger.InfoCtx(ctx, "test pc deleted: %s", id)
	return nil
}
