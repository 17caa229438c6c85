//go:build linux && amd64

package kvm

import "unsafe"

// System ioctls, issued on the /dev/kvm fd.
const (
	IoctlGetAPIVersion     = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x00
	IoctlCreateVM          = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x01
	IoctlGetMSRIndexList   = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(MSRList{})<<iocSizeShift | kvmio<<iocTypeShift | 0x02
	IoctlCheckExtension    = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x03
	IoctlGetVCPUMMapSize   = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x04
	IoctlGetSupportedCPUID = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(CPUID2{})<<iocSizeShift | kvmio<<iocTypeShift | 0x05
	IoctlGetEmulatedCPUID  = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(CPUID2{})<<iocSizeShift | kvmio<<iocTypeShift | 0x09
)

// VM ioctls, issued on a vm fd.
const (
	IoctlSetMemoryRegion         = iocWrite<<iocDirShift | unsafe.Sizeof(MemoryRegion{})<<iocSizeShift | kvmio<<iocTypeShift | 0x40
	IoctlCreateVCPU              = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x41
	IoctlGetDirtyLog             = iocWrite<<iocDirShift | unsafe.Sizeof(DirtyLog{})<<iocSizeShift | kvmio<<iocTypeShift | 0x42
	IoctlSetNrMMUPages           = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x44
	IoctlGetNrMMUPages           = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x45
	IoctlSetUserMemoryRegion     = iocWrite<<iocDirShift | unsafe.Sizeof(UserspaceMemoryRegion{})<<iocSizeShift | kvmio<<iocTypeShift | 0x46
	IoctlSetTSSAddr              = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x47
	IoctlSetIdentityMapAddr      = iocWrite<<iocDirShift | unsafe.Sizeof(uint64(0))<<iocSizeShift | kvmio<<iocTypeShift | 0x48
	IoctlCreateIRQChip           = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x60
	IoctlIRQLine                 = iocWrite<<iocDirShift | unsafe.Sizeof(IRQLevel{})<<iocSizeShift | kvmio<<iocTypeShift | 0x61
	IoctlGetIRQChip              = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(IRQChip{})<<iocSizeShift | kvmio<<iocTypeShift | 0x62
	// SetIRQChip and SetPIT carry a read direction in the kernel headers.
	IoctlSetIRQChip              = iocRead<<iocDirShift | unsafe.Sizeof(IRQChip{})<<iocSizeShift | kvmio<<iocTypeShift | 0x63
	IoctlCreatePIT               = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x64
	IoctlGetPIT                  = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(PITState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x65
	IoctlSetPIT                  = iocRead<<iocDirShift | unsafe.Sizeof(PITState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x66
	IoctlIRQLineStatus           = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(IRQLevel{})<<iocSizeShift | kvmio<<iocTypeShift | 0x67
	IoctlRegisterCoalescedMMIO   = iocWrite<<iocDirShift | unsafe.Sizeof(CoalescedMMIOZone{})<<iocSizeShift | kvmio<<iocTypeShift | 0x67
	IoctlUnregisterCoalescedMMIO = iocWrite<<iocDirShift | unsafe.Sizeof(CoalescedMMIOZone{})<<iocSizeShift | kvmio<<iocTypeShift | 0x68
	IoctlSetGSIRouting           = iocWrite<<iocDirShift | unsafe.Sizeof(IRQRouting{})<<iocSizeShift | kvmio<<iocTypeShift | 0x6a
	IoctlReinjectControl         = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x71
	IoctlIRQFD                   = iocWrite<<iocDirShift | unsafe.Sizeof(IRQFD{})<<iocSizeShift | kvmio<<iocTypeShift | 0x76
	IoctlCreatePIT2              = iocWrite<<iocDirShift | unsafe.Sizeof(PITConfig{})<<iocSizeShift | kvmio<<iocTypeShift | 0x77
	IoctlSetBootCPUID            = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x78
	IoctlIOEventFD               = iocWrite<<iocDirShift | unsafe.Sizeof(IOEventFD{})<<iocSizeShift | kvmio<<iocTypeShift | 0x79
	IoctlXenHVMConfig            = iocWrite<<iocDirShift | unsafe.Sizeof(XenHVMConfig{})<<iocSizeShift | kvmio<<iocTypeShift | 0x7a
	IoctlSetClock                = iocWrite<<iocDirShift | unsafe.Sizeof(ClockData{})<<iocSizeShift | kvmio<<iocTypeShift | 0x7b
	IoctlGetClock                = iocRead<<iocDirShift | unsafe.Sizeof(ClockData{})<<iocSizeShift | kvmio<<iocTypeShift | 0x7c
	IoctlGetPIT2                 = iocRead<<iocDirShift | unsafe.Sizeof(PITState2{})<<iocSizeShift | kvmio<<iocTypeShift | 0x9f
	IoctlSetPIT2                 = iocWrite<<iocDirShift | unsafe.Sizeof(PITState2{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa0
	IoctlEnableCap               = iocWrite<<iocDirShift | unsafe.Sizeof(EnableCap{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa3
	IoctlSignalMSI               = iocWrite<<iocDirShift | unsafe.Sizeof(MSI{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa5
	IoctlCreateDevice            = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(CreateDevice{})<<iocSizeShift | kvmio<<iocTypeShift | 0xe0
	IoctlSetDeviceAttr           = iocWrite<<iocDirShift | unsafe.Sizeof(DeviceAttr{})<<iocSizeShift | kvmio<<iocTypeShift | 0xe1
	IoctlGetDeviceAttr           = iocWrite<<iocDirShift | unsafe.Sizeof(DeviceAttr{})<<iocSizeShift | kvmio<<iocTypeShift | 0xe2
	IoctlHasDeviceAttr           = iocWrite<<iocDirShift | unsafe.Sizeof(DeviceAttr{})<<iocSizeShift | kvmio<<iocTypeShift | 0xe3
)

// vCPU ioctls, issued on a vcpu fd.
const (
	IoctlRun                   = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x80
	IoctlGetRegs               = iocRead<<iocDirShift | unsafe.Sizeof(Regs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x81
	IoctlSetRegs               = iocWrite<<iocDirShift | unsafe.Sizeof(Regs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x82
	IoctlGetSregs              = iocRead<<iocDirShift | unsafe.Sizeof(Sregs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x83
	IoctlSetSregs              = iocWrite<<iocDirShift | unsafe.Sizeof(Sregs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x84
	IoctlTranslate             = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(Translation{})<<iocSizeShift | kvmio<<iocTypeShift | 0x85
	IoctlInterrupt             = iocWrite<<iocDirShift | unsafe.Sizeof(Interrupt{})<<iocSizeShift | kvmio<<iocTypeShift | 0x86
	IoctlGetMSRs               = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(MSRs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x88
	IoctlSetMSRs               = iocWrite<<iocDirShift | unsafe.Sizeof(MSRs{})<<iocSizeShift | kvmio<<iocTypeShift | 0x89
	IoctlSetCPUID              = iocWrite<<iocDirShift | unsafe.Sizeof(CPUID{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8a
	IoctlSetSignalMask         = iocWrite<<iocDirShift | unsafe.Sizeof(SignalMask{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8b
	IoctlGetFPU                = iocRead<<iocDirShift | unsafe.Sizeof(FPU{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8c
	IoctlSetFPU                = iocWrite<<iocDirShift | unsafe.Sizeof(FPU{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8d
	IoctlGetLAPIC              = iocRead<<iocDirShift | unsafe.Sizeof(LAPICState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8e
	IoctlSetLAPIC              = iocWrite<<iocDirShift | unsafe.Sizeof(LAPICState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x8f
	IoctlSetCPUID2             = iocWrite<<iocDirShift | unsafe.Sizeof(CPUID2{})<<iocSizeShift | kvmio<<iocTypeShift | 0x90
	IoctlGetCPUID2             = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(CPUID2{})<<iocSizeShift | kvmio<<iocTypeShift | 0x91
	IoctlTPRAccessReporting    = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(TPRAccessCtl{})<<iocSizeShift | kvmio<<iocTypeShift | 0x92
	IoctlSetVAPICAddr          = iocWrite<<iocDirShift | unsafe.Sizeof(VAPICAddr{})<<iocSizeShift | kvmio<<iocTypeShift | 0x93
	IoctlGetMPState            = iocRead<<iocDirShift | unsafe.Sizeof(MPState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x98
	IoctlSetMPState            = iocWrite<<iocDirShift | unsafe.Sizeof(MPState{})<<iocSizeShift | kvmio<<iocTypeShift | 0x99
	IoctlNMI                   = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0x9a
	IoctlSetGuestDebug         = iocWrite<<iocDirShift | unsafe.Sizeof(GuestDebug{})<<iocSizeShift | kvmio<<iocTypeShift | 0x9b
	IoctlX86SetupMCE           = iocWrite<<iocDirShift | unsafe.Sizeof(uint64(0))<<iocSizeShift | kvmio<<iocTypeShift | 0x9c
	IoctlX86GetMCECapSupported = iocRead<<iocDirShift | unsafe.Sizeof(uint64(0))<<iocSizeShift | kvmio<<iocTypeShift | 0x9d
	IoctlX86SetMCE             = iocWrite<<iocDirShift | unsafe.Sizeof(X86MCE{})<<iocSizeShift | kvmio<<iocTypeShift | 0x9e
	IoctlGetVCPUEvents         = iocRead<<iocDirShift | unsafe.Sizeof(VCPUEvents{})<<iocSizeShift | kvmio<<iocTypeShift | 0x9f
	IoctlSetVCPUEvents         = iocWrite<<iocDirShift | unsafe.Sizeof(VCPUEvents{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa0
	IoctlGetDebugRegs          = iocRead<<iocDirShift | unsafe.Sizeof(DebugRegs{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa1
	IoctlSetDebugRegs          = iocWrite<<iocDirShift | unsafe.Sizeof(DebugRegs{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa2
	IoctlSetTSCKHz             = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0xa2
	IoctlGetTSCKHz             = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0xa3
	IoctlGetXSave              = iocRead<<iocDirShift | unsafe.Sizeof(XSave{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa4
	IoctlSetXSave              = iocWrite<<iocDirShift | unsafe.Sizeof(XSave{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa5
	IoctlGetXCRS               = iocRead<<iocDirShift | unsafe.Sizeof(XCRS{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa6
	IoctlSetXCRS               = iocWrite<<iocDirShift | unsafe.Sizeof(XCRS{})<<iocSizeShift | kvmio<<iocTypeShift | 0xa7
	IoctlGetOneReg             = iocWrite<<iocDirShift | unsafe.Sizeof(OneReg{})<<iocSizeShift | kvmio<<iocTypeShift | 0xab
	IoctlSetOneReg             = iocWrite<<iocDirShift | unsafe.Sizeof(OneReg{})<<iocSizeShift | kvmio<<iocTypeShift | 0xac
	IoctlKVMClockCtrl          = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0xad
	IoctlGetRegList            = (iocRead | iocWrite)<<iocDirShift | unsafe.Sizeof(RegList{})<<iocSizeShift | kvmio<<iocTypeShift | 0xb0
	IoctlSMI                   = iocNone<<iocDirShift | kvmio<<iocTypeShift | 0xb7
)
