//go:build linux

package kvm

import (
	"golang.org/x/sys/unix"
)

// Ioctl issues op on fd and retries while the call is interrupted by a
// signal.
func Ioctl(fd, op, arg uintptr) (uintptr, error) {
	for {
		res, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, op, arg)

		switch errno {
		case 0:
			return res, nil
		case unix.EINTR:
			continue
		}

		return res, errno
	}
}
