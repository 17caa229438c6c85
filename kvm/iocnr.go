package kvm

const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	// kvmio is the ioctl type byte shared by every KVM request.
	kvmio = 0xAE
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | kvmio<<iocTypeShift | nr<<iocNRShift
}

// IIO builds a KVM ioctl number that carries no argument struct.
func IIO(nr uintptr) uintptr {
	return ioc(iocNone, nr, 0)
}

// IIOR builds a KVM ioctl number in which the kernel fills a struct of size bytes.
func IIOR(nr, size uintptr) uintptr {
	return ioc(iocRead, nr, size)
}

// IIOW builds a KVM ioctl number in which the kernel reads a struct of size bytes.
func IIOW(nr, size uintptr) uintptr {
	return ioc(iocWrite, nr, size)
}

// IIOWR builds a KVM ioctl number whose struct is both read and written.
func IIOWR(nr, size uintptr) uintptr {
	return ioc(iocRead|iocWrite, nr, size)
}
