//go:build linux && amd64 && !kvm_v4_14_0

package kvm

import "unsafe"

// Ioctls added after Linux 4.14.
const (
	IoctlGetMSRFeatureIndexList = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(MSRList{})<<iocSizeShift | kvmio<<iocTypeShift | 0x0a
	IoctlGetNestedState         = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(NestedState{})<<iocSizeShift | kvmio<<iocTypeShift | 0xbe
	IoctlSetNestedState         = iocWrite<<iocDirShift | unsafe.Sizeof(NestedState{})<<iocSizeShift | kvmio<<iocTypeShift | 0xbf
)
