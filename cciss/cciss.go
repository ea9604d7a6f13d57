// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package cciss implements the Linux CCISS/HPSA command passthrough transport
// for HP Smart Array controllers, as defined in <linux/cciss_ioctl.h>.

package cciss

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unsafe"

	"github.com/cbork/hpsahba/ioctl"
)

const (
	// Number of sense data bytes captured in the completion record
	SENSEINFOBYTES = 32

	// Request block type field
	TYPE_CMD = 0x01
	TYPE_MSG = 0x03

	// Request block attribute field
	ATTR_UNTAGGED    = 0x00
	ATTR_SIMPLE      = 0x04
	ATTR_HEADOFQUEUE = 0x05
	ATTR_ORDERED     = 0x06

	// Request block transfer direction field
	XFER_NONE  = 0x00
	XFER_WRITE = 0x01
	XFER_READ  = 0x02
	XFER_RSVD  = 0x03
)

var (
	// CCISS_PASSTHRU = _IOWR('B', 11, IOCTL_Command_struct)
	CCISS_PASSTHRU = ioctl.Iowr('B', 11, unsafe.Sizeof(Command{}))
)

// LUNAddr is the 8-byte logical unit address of the command target. The
// all-zero address selects the controller itself.
type LUNAddr [8]byte

// RequestBlock describes the command to execute, mirroring RequestBlock_struct.
type RequestBlock struct {
	CDBLen   uint8
	TypeAttr uint8 // bitfield, see SetType
	Timeout  uint16
	CDB      [16]byte
}

// SetType packs the command type, queueing attribute and transfer direction
// into the shared bitfield byte: type in bits 0-2, attribute in bits 3-5,
// direction in bits 6-7.
func (r *RequestBlock) SetType(typ, attr, dir uint8) {
	r.TypeAttr = (typ & 0x7) | (attr&0x7)<<3 | (dir&0x3)<<6
}

// Direction returns the transfer direction encoded in the type bitfield.
func (r *RequestBlock) Direction() uint8 {
	return r.TypeAttr >> 6
}

// ErrorInfo is the completion record the driver fills in after executing a
// passthrough command, mirroring ErrorInfo_struct. CommandStatus zero means
// the command succeeded; anything else is a device-level failure.
type ErrorInfo struct {
	ScsiStatus    uint8
	SenseLen      uint8
	CommandStatus uint16
	ResidualCnt   uint32
	MoreErrInfo   [8]byte
	SenseInfo     [SENSEINFOBYTES]byte
}

// Dump writes the full completion record to w, one field per line, sense
// bytes in hex. This is the primary diagnostic payload when a controller
// rejects a command.
func (info *ErrorInfo) Dump(w io.Writer) {
	fmt.Fprintf(w, "HPSA SCSI error info:\n")
	fmt.Fprintf(w, "\tScsiStatus: 0x%02x\n", info.ScsiStatus)
	fmt.Fprintf(w, "\tSenseLen: %d\n", info.SenseLen)
	fmt.Fprintf(w, "\tCommandStatus: 0x%04x\n", info.CommandStatus)
	fmt.Fprintf(w, "\tResidualCnt: 0x%08x\n", info.ResidualCnt)
	fmt.Fprintf(w, "\tSenseInfo:")

	senseLen := int(info.SenseLen)
	if senseLen > len(info.SenseInfo) {
		senseLen = len(info.SenseInfo)
	}

	if senseLen > 0 {
		for _, b := range info.SenseInfo[:senseLen] {
			fmt.Fprintf(w, " 0x%02x", b)
		}
	} else {
		fmt.Fprintf(w, " <none>")
	}
	fmt.Fprintf(w, "\n")
}

// Command is the passthrough envelope handed to the CCISS_PASSTHRU ioctl,
// mirroring IOCTL_Command_struct byte for byte:
//
//	offset  field
//	     0  LUNInfo [8]
//	     8  Request (CDBLen, TypeAttr, Timeout, CDB[16])
//	    28  ErrorInfo (ScsiStatus ... SenseInfo[32])
//	    76  BufSize
//	    80  buf (pointer, after 2 bytes of C struct padding)
//
// The explicit padding field keeps the Go layout identical to the C one, so
// the struct can be passed straight to the kernel.
type Command struct {
	LUNInfo   LUNAddr
	Request   RequestBlock
	ErrorInfo ErrorInfo
	BufSize   uint16
	_         [2]byte
	buf       *byte
}

// SetTransferBuffer attaches buf as the command's data buffer and encodes its
// length both in the envelope and big-endian into CDB bytes 7-8, per the BMIC
// command format. Lengths that do not fit in 16 bits are rejected; callers
// are expected to size buffers from the fixed response layouts, so a failure
// here is a programming error, not a runtime condition.
func (c *Command) SetTransferBuffer(buf []byte) error {
	if len(buf) > math.MaxUint16 {
		return fmt.Errorf("cciss: transfer length %d exceeds CDB limit %d", len(buf), math.MaxUint16)
	}

	binary.BigEndian.PutUint16(c.Request.CDB[7:9], uint16(len(buf)))
	c.BufSize = uint16(len(buf))
	if len(buf) > 0 {
		c.buf = &buf[0]
	} else {
		c.buf = nil
	}

	return nil
}

// Buffer returns the attached transfer buffer, or nil if none is set.
func (c *Command) Buffer() []byte {
	if c.buf == nil {
		return nil
	}
	return unsafe.Slice(c.buf, int(c.BufSize))
}

// IoctlError reports a failure of the CCISS_PASSTHRU ioctl itself. The device
// never saw the command, so there is no completion record to inspect.
type IoctlError struct {
	Errno error
}

func (e *IoctlError) Error() string {
	return fmt.Sprintf("ioctl(CCISS_PASSTHRU) failed: %v", e.Errno)
}

func (e *IoctlError) Unwrap() error { return e.Errno }

// CommandStatusError reports a command that the transport delivered but the
// controller completed with a non-zero status. Info is a copy of the full
// completion record.
type CommandStatusError struct {
	Info ErrorInfo
}

func (e *CommandStatusError) Error() string {
	return fmt.Sprintf("command completed with status 0x%04x", e.Info.CommandStatus)
}
