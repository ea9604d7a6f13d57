// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package bmic

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	FIRMWARE_REV_LEN = 4
	VENDOR_ID_LEN    = 8
	PRODUCT_ID_LEN   = 16

	// Wire size of the identify controller response
	IDENTIFY_CONTROLLER_LEN = 400
)

// Feature bits in the YetMoreControllerFlags word
const (
	YET_MORE_CTLR_FLAG_HBA_MODE_SUPP = 1 << 25
)

// IdentifyController is the response buffer of BMIC_IDENTIFY_CONTROLLER. The
// layout is packed with fixed offsets dictated by the controller firmware;
// all multi-byte integers are little-endian on the wire regardless of host
// byte order. String fields are fixed-width, space-padded and not guaranteed
// to be null-terminated.
//
//	offset  field
//	     0  ConfiguredLogicalDrives
//	     1  ConfigurationSignature
//	     5  RunningFirmRev
//	     9  ROMFirmRev
//	    13  HardwareRev
//	    17  DrivePresentBitmap
//	    21  ExternalDriveBitmap
//	    25  BoardID
//	   251  RecROMInactiveRev
//	   255  RecROMFlags
//	   288  VendorID
//	   296  ProductID
//	   356  YetMoreControllerFlags
type IdentifyController struct {
	ConfiguredLogicalDrives uint8
	ConfigurationSignature  uint32
	RunningFirmRev          [FIRMWARE_REV_LEN]byte
	ROMFirmRev              [FIRMWARE_REV_LEN]byte
	HardwareRev             uint8
	Reserved0               [3]byte
	DrivePresentBitmap      uint32
	ExternalDriveBitmap     uint32
	BoardID                 uint32
	Reserved1               [222]byte
	RecROMInactiveRev       [FIRMWARE_REV_LEN]byte
	RecROMFlags             uint8
	Reserved2               [32]byte
	VendorID                [VENDOR_ID_LEN]byte
	ProductID               [PRODUCT_ID_LEN]byte
	Reserved3               [44]byte
	YetMoreControllerFlags  uint32
	Reserved4               [40]byte
}

// DecodeIdentifyController unpacks a raw identify controller response,
// converting the little-endian integer fields to host byte order.
func DecodeIdentifyController(buf []byte) (*IdentifyController, error) {
	if len(buf) < IDENTIFY_CONTROLLER_LEN {
		return nil, fmt.Errorf("bmic: identify controller response truncated: %d bytes", len(buf))
	}

	id := &IdentifyController{}
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, id); err != nil {
		return nil, err
	}

	return id, nil
}

// HBAModeSupported reports whether the controller firmware can expose
// physical disks directly to the host instead of logical volumes.
func (id *IdentifyController) HBAModeSupported() bool {
	return id.YetMoreControllerFlags&YET_MORE_CTLR_FLAG_HBA_MODE_SUPP != 0
}
