// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package bmic

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	SOFTWARE_NAME_LEN = 64
	HARDWARE_NAME_LEN = 32

	// Wire size of the sense controller parameters response
	CONTROLLER_PARAMETERS_LEN = 512
)

// ControllerParameters is the response buffer of
// BMIC_SENSE_CONTROLLER_PARAMETERS, matching the in-kernel
// bmic_controller_parameters layout. SoftwareName sits at offset 18,
// HardwareName at offset 82; only the name fields are reported, the rest are
// carried for layout fidelity.
type ControllerParameters struct {
	LEDFlags                      uint8
	EnableCommandListVerification uint8
	BackedOutWriteDrives          uint8
	StripesForParity              uint16
	ParityDistributionModeFlags   uint8
	MaxDriverRequests             uint16
	ElevatorTrendCount            uint16
	DisableElevator               uint8
	ForceScanComplete             uint8
	SCSITransferMode              uint8
	ForceNarrow                   uint8
	RebuildPriority               uint8
	ExpandPriority                uint8
	HostSDBAsicFix                uint8
	PDPIBurstFromHostDisabled     uint8
	SoftwareName                  [SOFTWARE_NAME_LEN]byte
	HardwareName                  [HARDWARE_NAME_LEN]byte
	BridgeRevision                uint8
	SnapshotPriority              uint8
	OSSpecific                    uint32
	PostPromptTimeout             uint8
	AutomaticDriveSlamming        uint8
	Reserved1                     uint8
	NVRAMFlags                    uint8
	CacheNVRAMFlags               uint8
	DriveConfigFlags              uint8
	Reserved2                     uint16
	TempWarningLevel              uint8
	TempShutdownLevel             uint8
	TempConditionReset            uint8
	MaxCoalesceCommands           uint8
	MaxCoalesceDelay              uint32
	OrcaPassword                  [4]byte
	AccessID                      [16]byte
	Reserved3                     [356]byte
}

// DecodeControllerParameters unpacks a raw sense controller parameters
// response.
func DecodeControllerParameters(buf []byte) (*ControllerParameters, error) {
	if len(buf) < CONTROLLER_PARAMETERS_LEN {
		return nil, fmt.Errorf("bmic: controller parameters response truncated: %d bytes", len(buf))
	}

	params := &ControllerParameters{}
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, params); err != nil {
		return nil, err
	}

	return params, nil
}
