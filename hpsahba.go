// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package hpsahba queries identity and configuration information from HP/HPE
// Smart Array controllers over the CCISS passthrough transport and reports
// whether the controller supports HBA (pass-through) mode.

package hpsahba

import (
	"fmt"
	"io"

	"github.com/cbork/hpsahba/bmic"
	"github.com/cbork/hpsahba/boarddb"
)

const Version = "0.0.0"

// Info holds the decoded responses of the two controller queries.
type Info struct {
	ID     *bmic.IdentifyController
	Params *bmic.ControllerParameters
}

// Query runs BMIC_IDENTIFY_CONTROLLER and BMIC_SENSE_CONTROLLER_PARAMETERS
// sequentially over t. The first failure aborts the query; no partial Info
// is ever returned.
func Query(t bmic.Transport) (*Info, error) {
	idBuf := make([]byte, bmic.IDENTIFY_CONTROLLER_LEN)
	if err := bmic.ExecCommand(t, bmic.BMIC_IDENTIFY_CONTROLLER, idBuf); err != nil {
		return nil, err
	}

	paramsBuf := make([]byte, bmic.CONTROLLER_PARAMETERS_LEN)
	if err := bmic.ExecCommand(t, bmic.BMIC_SENSE_CONTROLLER_PARAMETERS, paramsBuf); err != nil {
		return nil, err
	}

	id, err := bmic.DecodeIdentifyController(idBuf)
	if err != nil {
		return nil, err
	}

	params, err := bmic.DecodeControllerParameters(paramsBuf)
	if err != nil {
		return nil, err
	}

	return &Info{ID: id, Params: params}, nil
}

// WriteReport prints the decoded fields to w, one NAME='value' line per
// field. The field order is fixed and part of the tool's output contract.
// If db resolves the board ID to a model name, one extra BOARD_NAME line is
// appended after the fixed fields.
func (info *Info) WriteReport(w io.Writer, db *boarddb.BoardDb) {
	str := func(name string, raw []byte, maxLen int) {
		fmt.Fprintf(w, "%s='%s'\n", name, bmic.DecodeString(raw, maxLen))
	}

	str("VENDOR_ID", info.ID.VendorID[:], bmic.VENDOR_ID_LEN)
	str("PRODUCT_ID", info.ID.ProductID[:], bmic.PRODUCT_ID_LEN)
	fmt.Fprintf(w, "BOARD_ID='0x%08x'\n", info.ID.BoardID)
	str("SOFTWARE_NAME", info.Params.SoftwareName[:], bmic.SOFTWARE_NAME_LEN)
	str("HARDWARE_NAME", info.Params.HardwareName[:], bmic.HARDWARE_NAME_LEN)
	str("RUNNING_FIRM_REV", info.ID.RunningFirmRev[:], bmic.FIRMWARE_REV_LEN)
	str("ROM_FIRM_REV", info.ID.ROMFirmRev[:], bmic.FIRMWARE_REV_LEN)
	str("REC_ROM_INACTIVE_REV", info.ID.RecROMInactiveRev[:], bmic.FIRMWARE_REV_LEN)
	fmt.Fprintf(w, "YET_MORE_CONTROLLER_FLAGS='0x%08x'\n", info.ID.YetMoreControllerFlags)

	hbaMode := 0
	if info.ID.HBAModeSupported() {
		hbaMode = 1
	}
	fmt.Fprintf(w, "HBA_MODE_SUPPORTED=%d\n", hbaMode)

	if db != nil {
		if name, ok := db.Lookup(info.ID.BoardID); ok {
			fmt.Fprintf(w, "BOARD_NAME='%s'\n", name)
		}
	}
}
