// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package hpsahba

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/cbork/hpsahba/bmic"
	"github.com/cbork/hpsahba/boarddb"
	"github.com/cbork/hpsahba/cciss"
)

// fakeController simulates the CCISS transport: it serves canned response
// buffers per BMIC command number, or fails at the ioctl or completion level.
type fakeController struct {
	responses map[uint8][]byte
	status    uint16 // non-zero: fail every command with this CommandStatus
	errno     error  // non-nil: fail every ioctl outright
	calls     []uint8
}

func (f *fakeController) Execute(cmd *cciss.Command) error {
	cmdNum := cmd.Request.CDB[6]
	f.calls = append(f.calls, cmdNum)

	if f.errno != nil {
		return &cciss.IoctlError{Errno: f.errno}
	}

	if f.status != 0 {
		cmd.ErrorInfo.CommandStatus = f.status
		cmd.ErrorInfo.SenseLen = 2
		cmd.ErrorInfo.SenseInfo[0] = 0x70
		cmd.ErrorInfo.SenseInfo[1] = 0x05
		return &cciss.CommandStatusError{Info: cmd.ErrorInfo}
	}

	copy(cmd.Buffer(), f.responses[cmdNum])
	return nil
}

func fixtureIdentify() []byte {
	raw := make([]byte, bmic.IDENTIFY_CONTROLLER_LEN)
	copy(raw[288:], "HP      ")
	copy(raw[296:], "P420i           ")
	copy(raw[5:], "6.60")
	copy(raw[9:], "6.60")
	copy(raw[251:], "6.00")
	binary.LittleEndian.PutUint32(raw[25:], 0x3354103c)
	binary.LittleEndian.PutUint32(raw[356:], bmic.YET_MORE_CTLR_FLAG_HBA_MODE_SUPP|0x3)
	return raw
}

func fixtureParameters() []byte {
	raw := make([]byte, bmic.CONTROLLER_PARAMETERS_LEN)
	copy(raw[18:], "CISS")
	copy(raw[82:], "DEFAULT")
	return raw
}

func TestQueryReport(t *testing.T) {
	assert := assert.New(t)

	fake := &fakeController{responses: map[uint8][]byte{
		uint8(bmic.BMIC_IDENTIFY_CONTROLLER):         fixtureIdentify(),
		uint8(bmic.BMIC_SENSE_CONTROLLER_PARAMETERS): fixtureParameters(),
	}}

	info, err := Query(fake)
	assert.NoError(err)
	assert.Equal([]uint8{0x11, 0x64}, fake.calls)

	var out bytes.Buffer
	info.WriteReport(&out, nil)

	assert.Equal([]string{
		"VENDOR_ID='HP'",
		"PRODUCT_ID='P420i'",
		"BOARD_ID='0x3354103c'",
		"SOFTWARE_NAME='CISS'",
		"HARDWARE_NAME='DEFAULT'",
		"RUNNING_FIRM_REV='6.60'",
		"ROM_FIRM_REV='6.60'",
		"REC_ROM_INACTIVE_REV='6.00'",
		"YET_MORE_CONTROLLER_FLAGS='0x02000003'",
		"HBA_MODE_SUPPORTED=1",
	}, strings.Split(strings.TrimRight(out.String(), "\n"), "\n"))
}

func TestReportBoardName(t *testing.T) {
	assert := assert.New(t)

	fake := &fakeController{responses: map[uint8][]byte{
		uint8(bmic.BMIC_IDENTIFY_CONTROLLER):         fixtureIdentify(),
		uint8(bmic.BMIC_SENSE_CONTROLLER_PARAMETERS): fixtureParameters(),
	}}

	info, err := Query(fake)
	assert.NoError(err)

	db, err := boarddb.OpenBoardDb("/nonexistent/boards.yaml")
	assert.NoError(err)

	var out bytes.Buffer
	info.WriteReport(&out, &db)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(lines, 11)
	assert.Equal("BOARD_NAME='Smart Array P420i'", lines[10])
}

// A device-level command failure on the first command aborts the query before
// the second command is issued.
func TestQueryCommandFailure(t *testing.T) {
	assert := assert.New(t)

	fake := &fakeController{status: 0x0002}

	info, err := Query(fake)
	assert.Nil(info)
	assert.Error(err)
	assert.Equal([]uint8{0x11}, fake.calls)

	var statusErr *cciss.CommandStatusError
	assert.True(errors.As(err, &statusErr))
	assert.Equal(uint16(0x0002), statusErr.Info.CommandStatus)
	assert.Contains(err.Error(), "BMIC_IDENTIFY_CONTROLLER")

	var out bytes.Buffer
	statusErr.Info.Dump(&out)
	assert.Contains(out.String(), "CommandStatus: 0x0002")
	assert.Contains(out.String(), "SenseInfo: 0x70 0x05")
}

// An ioctl-level failure carries no completion record.
func TestQueryIoctlFailure(t *testing.T) {
	assert := assert.New(t)

	fake := &fakeController{errno: unix.EACCES}

	info, err := Query(fake)
	assert.Nil(info)
	assert.Error(err)

	var ioctlErr *cciss.IoctlError
	assert.True(errors.As(err, &ioctlErr))
	assert.Equal(unix.EACCES, ioctlErr.Errno)

	var statusErr *cciss.CommandStatusError
	assert.False(errors.As(err, &statusErr))
}
