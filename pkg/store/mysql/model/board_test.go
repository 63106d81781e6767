package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// readyBoard returns a board that satisfies every CanExecuteTest condition
func readyBoard() *Board {
	return &Board{
		Name:                 "evm-rack1-03",
		HardwareSerialNumber: "SN-0001",
		Platform:             PlatformAM62X,
		DeviceType:           DeviceTypeEVM,
		TestFarm:             TestFarmHLOS,
		Status:               BoardStatusIdle,
		IsAlive:              true,
		IsLocked:             false,
		TestPC: &TestPC{
			Hostname:  "testpc-01",
			IPAddress: "10.0.0.10",
			Status:    TestPCStatusOnline,
			OSVersion: OSUbuntu2204,
		},
	}
}

func TestBoard_CanExecuteTest(t *testing.T) {
	b := readyBoard()
	assert.True(t, b.CanExecuteTest())

	// Flipping any single condition must make the board unschedulable
	b = readyBoard()
	b.IsAlive = false
	assert.False(t, b.CanExecuteTest(), "dead board must not execute")

	b = readyBoard()
	b.Status = BoardStatusBusy
	assert.False(t, b.CanExecuteTest(), "busy board must not execute")

	b = readyBoard()
	b.IsLocked = true
	assert.False(t, b.CanExecuteTest(), "locked board must not execute")

	b = readyBoard()
	b.TestPC = nil
	assert.False(t, b.CanExecuteTest(), "board without a PC must not execute")

	b = readyBoard()
	b.TestPC.Status = TestPCStatusOffline
	assert.False(t, b.CanExecuteTest(), "board behind an offline PC must not execute")
}

func TestBoard_CanExecuteTest_InitializingPC(t *testing.T) {
	// A PC that is still initializing already accepts work
	b := readyBoard()
	b.TestPC.Status = TestPCStatusInitializing
	assert.True(t, b.CanExecuteTest())

	b.TestPC.Status = TestPCStatusMaintenance
	assert.False(t, b.CanExecuteTest())
}

func TestBoard_Healthy(t *testing.T) {
	b := readyBoard()
	assert.True(t, b.Healthy())

	b.Status = BoardStatusError
	assert.False(t, b.Healthy())

	b = readyBoard()
	b.IsAlive = false
	assert.False(t, b.Healthy())

	// Busy is unhealthy-free: only ERROR and death count against it
	b = readyBoard()
	b.Status = BoardStatusBusy
	assert.True(t, b.Healthy())
}

func TestBoardStatus_Valid(t *testing.T) {
	for _, s := range []BoardStatus{
		BoardStatusIdle, BoardStatusBusy, BoardStatusUpdatingSDK,
		BoardStatusOffline, BoardStatusDeactivated, BoardStatusError,
	} {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}
	assert.False(t, BoardStatus("RUNNING").Valid())
	assert.False(t, BoardStatus("idle").Valid(), "enum values are case sensitive")
	assert.False(t, BoardStatus("").Valid())
}

func TestPlatformAndFarmEnums(t *testing.T) {
	assert.True(t, PlatformJ784S4.Valid())
	assert.False(t, Platform("AM99X").Valid())

	assert.True(t, DeviceTypeStarterKit.Valid())
	assert.False(t, DeviceType("DEVKIT").Valid())

	assert.True(t, TestFarmIntegration.Valid())
	assert.False(t, TestFarm("PRODUCTION").Valid())
}
