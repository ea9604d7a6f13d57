// Copyright 2018 The hpsahba authors. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Implementation of Linux kernel ioctl macros (<uapi/asm-generic/ioctl.h>).
// See https://www.kernel.org/doc/Documentation/ioctl/ioctl-number.txt

package ioctl

import "golang.org/x/sys/unix"

const (
	_IOC_NONE  = 0
	_IOC_WRITE = 1
	_IOC_READ  = 2

	_IOC_NRBITS   = 8
	_IOC_TYPEBITS = 8
	_IOC_SIZEBITS = 14

	_IOC_NRSHIFT   = 0
	_IOC_TYPESHIFT = _IOC_NRSHIFT + _IOC_NRBITS
	_IOC_SIZESHIFT = _IOC_TYPESHIFT + _IOC_TYPEBITS
	_IOC_DIRSHIFT  = _IOC_SIZESHIFT + _IOC_SIZEBITS
)

func ioc(dir, t, nr, size uintptr) uintptr {
	return (dir << _IOC_DIRSHIFT) | (t << _IOC_TYPESHIFT) | (nr << _IOC_NRSHIFT) | (size << _IOC_SIZESHIFT)
}

// Ior calculates the ioctl command for a read-ioctl of the specified type, number and size.
func Ior(t, nr, size uintptr) uintptr {
	return ioc(_IOC_READ, t, nr, size)
}

// Iow calculates the ioctl command for a write-ioctl of the specified type, number and size.
func Iow(t, nr, size uintptr) uintptr {
	return ioc(_IOC_WRITE, t, nr, size)
}

// Iowr calculates the ioctl command for a read/write-ioctl of the specified type, number and size.
func Iowr(t, nr, size uintptr) uintptr {
	return ioc(_IOC_READ|_IOC_WRITE, t, nr, size)
}

// Ioctl executes an ioctl command on the specified file descriptor.
func Ioctl(fd, cmd, ptr uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, ptr)
	if errno != 0 {
		return errno
	}
	return nil
}
