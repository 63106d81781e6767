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

// BoardService manages board inventory, the board lock, and board logs
type BoardService struct {
	boardRepo      *mysql.BoardRepository
	boardLogRepo   *mysql.BoardLogRepository
	capabilityRepo *mysql.CapabilityRepository
	relayRepo      *mysql.RelayRepository
	testPCRepo     *mysql.TestPCRepository
}

// NewBoardService creates a new board service
func NewBoardService(
	boardRepo *mysql.BoardRepository,
	boardLogRepo *mysql.BoardLogRepository,
	capabilityRepo *mysql.CapabilityRepository,
	relayRepo *mysql.RelayRepository,
	testPCRepo *mysql.TestPCRepository,
) *BoardService {
	return &BoardService{
		boardRepo:      boardRepo,
		boardLogRepo:   boardLogRepo,
		capabilityRepo: capabilityRepo,
		relayRepo:      relayRepo,
		testPCRepo:     testPCRepo,
	}
}

// Create registers a new board
func (s *BoardService) Create(ctx context.Context, req *model.CreateBoardRequest) (*storemodel.Board, error) {
	platform := storemodel.Platform(req.Platform)
	if !platform.Valid() {
		return nil, NewValidationError("platform", fmt.Sprintf("unknown platform: %s", req.Platform))
	}
	deviceType := storemodel.DeviceType(req.DeviceType)
	if !deviceType.Valid() {
		return nil, NewValidationError("device_type", fmt.Sprintf("unknown device type: %s", req.DeviceType))
	}
	testFarm := storemodel.TestFarm(req.TestFarm)
	if !testFarm.Valid() {
		return nil, NewValidationError("test_farm", fmt.Sprintf("unknown test farm: %s", req.TestFarm))
	}

	status := storemodel.BoardStatusOffline
	if req.Status != "" {
		status = storemodel.BoardStatus(req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown board status: %s", req.Status))
		}
	}

	if err := s.validateRelayRef(ctx, req.RelayID, req.RelayPort); err != nil {
		return nil, err
	}
	if err := s.validateTestPCRef(ctx, req.TestPCID); err != nil {
		return nil, err
	}

	capabilities, err := s.resolveCapabilities(ctx, req.CapabilityIDs)
	if err != nil {
		return nil, err
	}

	board := &storemodel.Board{
		Name:                 req.Name,
		HardwareSerialNumber: req.HardwareSerialNumber,
		Project:              req.Project,
		Platform:             platform,
		DeviceType:           deviceType,
		SDKVersion:           req.SDKVersion,
		SoftwareVersion:      req.SoftwareVersion,
		TestFarm:             testFarm,
		Capabilities:         capabilities,
		Status:               status,
		BoardIP:              req.BoardIP,
		RelayID:              req.RelayID,
		RelayPort:            req.RelayPort,
		TestPCID:             req.TestPCID,
		Location:             req.Location,
		Description:          req.Description,
		Notes:                req.Notes,
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := s.boardRepo.GetBySerial(ctx, req.HardwareSerialNumber); lookupErr == nil && existing != nil {
				return nil, NewValidationError("hardware_serial_number",
					fmt.Sprintf("hardware serial number %s already exists", req.HardwareSerialNumber))
			}
			return nil, NewValidationError("board", "duplicate value for a unique board field")
		}
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	logger.InfoCtx(ctx, "board created: %s serial=%s (%s)", board.Name, board.HardwareSerialNumber, board.ID)
	return board, nil
}

func (s *BoardService) validateRelayRef(ctx context.Context, relayID *string, relayPort *int) error {
	if relayPort != nil && (*relayPort < 1 || *relayPort > 100) {
		return NewValidationError("relay_port", "relay port must be between 1 and 100")
	}
	if relayID == nil {
		return nil
	}
	relay, err := s.relayRepo.Get(ctx, *relayID)
	if err != nil {
		return err
	}
	if relay == nil {
		return NewValidationError("relay_id", fmt.Sprintf("relay %s does not exist", *relayID))
	}
	if relayPort != nil && *relayPort > relay.PortCount {
		return NewValidationError("relay_port",
			fmt.Sprintf("relay %s has only %d ports", relay.RelayName, relay.PortCount))
	}
	return nil
}

func (s *BoardService) validateTestPCRef(ctx context.Context, testPCID *string) error {
	if testPCID == nil {
		return nil
	}
	pc, err := s.testPCRepo.Get(ctx, *testPCID)
	if err != nil {
		return err
	}
	if pc == nil {
		return NewValidationError("test_pc_id", fmt.Sprintf("test pc %s does not exist", *testPCID))
	}
	return nil
}

func (s *BoardService) resolveCapabilities(ctx context.Context, ids []string) ([]storemodel.Capability, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	capabilities, err := s.capabilityRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(capabilities) != len(ids) {
		return nil, NewValidationError("capability_ids", "one or more capability ids do not exist")
	}
	return capabilities, nil
}

// Get retrieves a board with its relay, test PC and capabilities
func (s *BoardService) Get(ctx context.Context, id string) (*storemodel.Board, error) {
	board, err := s.boardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	return board, nil
}

// List retrieves boards matching the query
func (s *BoardService) List(ctx context.Context, query *model.ListBoardsQuery) ([]*storemodel.Board, error) {
	if query.Status != "" && !storemodel.BoardStatus(query.Status).Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown board status: %s", query.Status))
	}
	if query.Platform != "" && !storemodel.Platform(query.Platform).Valid() {
		return nil, NewValidationError("platform", fmt.Sprintf("unknown platform: %s", query.Platform))
	}
	if query.TestFarm != "" && !storemodel.TestFarm(query.TestFarm).Valid() {
		return nil, NewValidationError("test_farm", fmt.Sprintf("unknown test farm: %s", query.TestFarm))
	}

	return s.boardRepo.List(ctx, mysql.BoardFilter{
		Status:       storemodel.BoardStatus(query.Status),
		Name:         query.Name,
		Project:      query.Project,
		Platform:     storemodel.Platform(query.Platform),
		TestFarm:     storemodel.TestFarm(query.TestFarm),
		IsAlive:      query.IsAlive,
		IsLocked:     query.IsLocked,
		RelayID:      query.RelayID,
		TestPCID:     query.TestPCID,
		CapabilityID: query.CapabilityID,
	})
}

// Update modifies a board
func (s *BoardService) Update(ctx context.Context, id string, req *model.UpdateBoardRequest) (*storemodel.Board, error) {
	board, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Project != nil {
		board.Project = *req.Project
	}
	if req.Platform != nil {
		platform := storemodel.Platform(*req.Platform)
		if !platform.Valid() {
			return nil, NewValidationError("platform", fmt.Sprintf("unknown platform: %s", *req.Platform))
		}
		board.Platform = platform
	}
	if req.DeviceType != nil {
		deviceType := storemodel.DeviceType(*req.DeviceType)
		if !deviceType.Valid() {
			return nil, NewValidationError("device_type", fmt.Sprintf("unknown device type: %s", *req.DeviceType))
		}
		board.DeviceType = deviceType
	}
	if req.SDKVersion != nil && *req.SDKVersion != board.SDKVersion {
		board.SDKVersion = *req.SDKVersion
		now := time.Now().UTC()
		board.LastSDKUpdateAt = &now
	}
	if req.SoftwareVersion != nil {
		board.SoftwareVersion = *req.SoftwareVersion
	}
	if req.TestFarm != nil {
		testFarm := storemodel.TestFarm(*req.TestFarm)
		if !testFarm.Valid() {
			return nil, NewValidationError("test_farm", fmt.Sprintf("unknown test farm: %s", *req.TestFarm))
		}
		board.TestFarm = testFarm
	}
	if req.Status != nil {
		status := storemodel.BoardStatus(*req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown board status: %s", *req.Status))
		}
		board.Status = status
	}
	if req.IsAlive != nil {
		board.IsAlive = *req.IsAlive
	}
	if req.BoardIP != nil {
		board.BoardIP = req.BoardIP
	}
	if req.RelayID != nil {
		if *req.RelayID == "" {
			board.RelayID = nil
			board.RelayPort = nil
		} else {
			board.RelayID = req.RelayID
		}
	}
	if req.RelayPort != nil {
		board.RelayPort = req.RelayPort
	}
	if board.RelayID != nil || req.RelayPort != nil {
		if err := s.validateRelayRef(ctx, board.RelayID, board.RelayPort); err != nil {
			return nil, err
		}
	}
	if req.TestPCID != nil {
		if *req.TestPCID == "" {
			board.TestPCID = nil
		} else {
			board.TestPCID = req.TestPCID
			if err := s.validateTestPCRef(ctx, board.TestPCID); err != nil {
				return nil, err
			}
		}
	}
	if req.Location != nil {
		board.Location = *req.Location
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Notes != nil {
		board.Notes = *req.Notes
	}

	// Resolve the capability set before writing anything so a bad reference
	// rejects the whole update
	var capabilities *[]storemodel.Capability
	if req.CapabilityIDs != nil {
		resolved, err := s.resolveCapabilities(ctx, *req.CapabilityIDs)
		if err != nil {
			return nil, err
		}
		capabilities = &resolved
	}

	if err := s.boardRepo.Update(ctx, board, capabilities); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return s.Get(ctx, id)
}

// Lock claims the board for exclusive use. Exactly one of two concurrent
// callers wins; the loser gets acquired=false.
func (s *BoardService) Lock(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	acquired, err := s.boardRepo.AcquireLock(ctx, id)
	if err != nil {
		return false, err
	}
	if acquired {
		logger.InfoCtx(ctx, "board locked: %s", id)
	}
	return acquired, nil
}

// Unlock releases the exclusive-use claim
func (s *BoardService) Unlock(ctx context.Context, id string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	released, err := s.boardRepo.ReleaseLock(ctx, id)
	if err != nil {
		return false, err
	}
	if released {
		logger.InfoCtx(ctx, "board unlocked: %s", id)
	}
	return released, nil
}

// Heartbeat records a liveness ping from the board
func (s *BoardService) Heartbeat(ctx context.Context, id string) error {
	err := s.boardRepo.UpdateHeartbeat(ctx, id, time.Now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AddLog appends a log line to a board
func (s *BoardService) AddLog(ctx context.Context, id string, req *model.CreateBoardLogRequest) (*storemodel.BoardLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	level := storemodel.BoardLogLevelInfo
	if req.Level != "" {
		level = storemodel.BoardLogLevel(req.Level)
		if !level.Valid() {
			return nil, NewValidationError("level", fmt.Sprintf("unknown log level: %s", req.Level))
		}
	}

	log := &storemodel.BoardLog{
		BoardID: id,
		Level:   level,
		Message: req.Message,
	}
	if err := s.boardLogRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create board log: %w", err)
	}
	return log, nil
}

// ListLogs retrieves the newest log lines for a board along with the total
// number recorded
func (s *BoardService) ListLogs(ctx context.Context, id string, limit int) ([]*storemodel.BoardLog, int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, 0, err
	}
	logs, err := s.boardLogRepo.ListRecent(ctx, id, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.boardLogRepo.CountForBoard(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Delete removes a board and its log history
func (s *BoardService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	logger.InfoCtx(ctx, "board deleted: %s", id)
	return nil
}
