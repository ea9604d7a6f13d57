// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package cciss

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cbork/hpsahba/ioctl"
)

// Device is an open CCISS controller device node (/dev/sgN for hpsa
// controllers, /dev/cciss/cXd0 for the older driver).
type Device struct {
	Name string
	fd   int
}

// OpenDevice opens the controller device node read/write.
func OpenDevice(name string) (*Device, error) {
	fd, err := unix.Open(name, unix.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to open device r/w: %w", name, err)
	}

	return &Device{Name: name, fd: fd}, nil
}

// Close releases the device handle.
func (d *Device) Close() error {
	if err := unix.Close(d.fd); err != nil {
		return fmt.Errorf("%s: close() failed: %w", d.Name, err)
	}
	return nil
}

// Execute issues a prepared passthrough command against the controller and
// validates the completion record. The command's transfer buffer must stay
// valid for the duration of the call. Commands are executed synchronously
// with the timeout encoded in the request block (zero means the device
// default, which may block indefinitely).
func (d *Device) Execute(cmd *Command) error {
	if err := ioctl.Ioctl(uintptr(d.fd), CCISS_PASSTHRU, uintptr(unsafe.Pointer(cmd))); err != nil {
		return &IoctlError{Errno: err}
	}

	if cmd.ErrorInfo.CommandStatus != 0 {
		return &CommandStatusError{Info: cmd.ErrorInfo}
	}

	return nil
}
