// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package bmic builds and decodes BMIC vendor commands for HP Smart Array
// controllers. BMIC is the controller management dialect carried over the
// CCISS passthrough transport.

package bmic

import (
	"fmt"

	"github.com/cbork/hpsahba/cciss"
)

const (
	// CDB opcodes selecting the BMIC transfer direction
	BMIC_READ  = 0x26
	BMIC_WRITE = 0x27

	// BMIC commands use a 10-byte CDB: opcode in byte 0, command number in
	// byte 6, big-endian transfer length in bytes 7-8.
	BMIC_CDB_LEN = 10
)

// CommandCode identifies a supported BMIC command. Each code knows its own
// transfer direction; supporting a new command means adding a code here and
// extending direction(), not editing call sites.
type CommandCode uint8

const (
	BMIC_IDENTIFY_CONTROLLER         CommandCode = 0x11
	BMIC_SENSE_CONTROLLER_PARAMETERS CommandCode = 0x64
)

func (c CommandCode) String() string {
	switch c {
	case BMIC_IDENTIFY_CONTROLLER:
		return "BMIC_IDENTIFY_CONTROLLER"
	case BMIC_SENSE_CONTROLLER_PARAMETERS:
		return "BMIC_SENSE_CONTROLLER_PARAMETERS"
	}
	return fmt.Sprintf("BMIC(0x%02x)", uint8(c))
}

// direction returns the data transfer direction for the command. Both
// commands implemented here read from the controller; no write-direction
// BMIC command is currently supported.
func (c CommandCode) direction() (uint8, error) {
	switch c {
	case BMIC_IDENTIFY_CONTROLLER, BMIC_SENSE_CONTROLLER_PARAMETERS:
		return cciss.XFER_READ, nil
	}
	return 0, fmt.Errorf("bmic: unsupported command 0x%02x", uint8(c))
}

// BuildCommand constructs a CCISS passthrough envelope for the given BMIC
// command, transferring into buf. The zeroed LUN address targets the
// controller itself. An unrecognized command code or an oversized buffer is
// a contract violation and fails immediately.
func BuildCommand(code CommandCode, buf []byte) (*cciss.Command, error) {
	dir, err := code.direction()
	if err != nil {
		return nil, err
	}

	cmd := &cciss.Command{}

	switch dir {
	case cciss.XFER_WRITE:
		cmd.Request.CDB[0] = BMIC_WRITE
	default:
		cmd.Request.CDB[0] = BMIC_READ
	}
	cmd.Request.CDB[6] = uint8(code)

	if err := cmd.SetTransferBuffer(buf); err != nil {
		return nil, err
	}

	cmd.Request.CDBLen = BMIC_CDB_LEN
	cmd.Request.SetType(cciss.TYPE_CMD, cciss.ATTR_SIMPLE, dir)
	cmd.Request.Timeout = 0 // device default

	return cmd, nil
}

// Transport executes a single prepared passthrough command. *cciss.Device is
// the real implementation; tests substitute simulated controllers.
type Transport interface {
	Execute(cmd *cciss.Command) error
}

// ExecCommand builds the command, runs it over t and annotates any failure
// with the command name. Failures are never retried; callers treat them as
// fatal.
func ExecCommand(t Transport, code CommandCode, buf []byte) error {
	cmd, err := BuildCommand(code, buf)
	if err != nil {
		return err
	}

	if err := t.Execute(cmd); err != nil {
		return fmt.Errorf("command %s failed: %w", code, err)
	}

	return nil
}
