package kvm

import "fmt"

// Capability is an extension number passed to KVM_CHECK_EXTENSION.
type Capability uint

const (
	CapIRQChip                  Capability = 0
	CapHLT                      Capability = 1
	CapMMUShadowCacheControl    Capability = 2
	CapUserMemory               Capability = 3
	CapSetTSSAddr               Capability = 4
	CapVAPIC                    Capability = 6
	CapEXTCPUID                 Capability = 7
	CapClockSource              Capability = 8
	CapNRVCPUs                  Capability = 9
	CapNRMemSlots               Capability = 10
	CapPIT                      Capability = 11
	CapNOPIODelay               Capability = 12
	CapPVMMU                    Capability = 13
	CapMPState                  Capability = 14
	CapCoalescedMMIO            Capability = 15
	CapSyncMMU                  Capability = 16
	CapIOMMU                    Capability = 18
	CapDestroyMemoryRegionWorks Capability = 21
	CapUserNMI                  Capability = 22
	CapSetGuestDebug            Capability = 23
	CapReinjectControl          Capability = 24
	CapIRQRouting               Capability = 25
	CapIRQInjectStatus          Capability = 26
	CapAssignDevIRQ             Capability = 29
	CapJoinMemoryRegionsWorks   Capability = 30
	CapMCE                      Capability = 31
	CapIRQFD                    Capability = 32
	CapPIT2                     Capability = 33
	CapSetBootCPUID             Capability = 34
	CapPITState2                Capability = 35
	CapIOEventFD                Capability = 36
	CapSetIdentityMapAddr       Capability = 37
	CapXENHVM                   Capability = 38
	CapAdjustClock              Capability = 39
	CapInternalErrorData        Capability = 40
	CapVCPUEvents               Capability = 41
	CapS390PSW                  Capability = 42
	CapPPCSegState              Capability = 43
	CapHyperV                   Capability = 44
	CapHyperVVAPIC              Capability = 45
	CapHyperVSpin               Capability = 46
	CapPCISegment               Capability = 47
	CapPPCPairedSingles         Capability = 48
	CapINTRShadow               Capability = 49
	CapDebugRegs                Capability = 50
	CapX86RobustSinglestep      Capability = 51
	CapPPCOSI                   Capability = 52
	CapPPCUnsetIRQ              Capability = 53
	CapEnableCap                Capability = 54
	CapXSave                    Capability = 55
	CapXCRS                     Capability = 56
	CapPPCGetPVInfo             Capability = 57
	CapPPCIRQLevel              Capability = 58
	CapASYNCPF                  Capability = 59
	CapTSCControl               Capability = 60
	CapGetTSCKHz                Capability = 61
	CapPPCBookeSRegs            Capability = 62
	CapSPAPRTCE                 Capability = 63
	CapPPCSMT                   Capability = 64
	CapPPCRMA                   Capability = 65
	CapMaxVCPUs                 Capability = 66
	CapPPCHIOR                  Capability = 67
	CapPPCPAPR                  Capability = 68
	CapSWTLB                    Capability = 69
	CapOneReg                   Capability = 70
	CapS390GMap                 Capability = 71
	CapTSCDeadlineTimer         Capability = 72
	CapS390UControl             Capability = 73
	CapSyncRegs                 Capability = 74
	CapPCI23                    Capability = 75
	CapKVMClockCtrl             Capability = 76
	CapSignalMSI                Capability = 77
	CapPPCGetSMMUInfo           Capability = 78
	CapS390COW                  Capability = 79
	CapPPCAllocHTAB             Capability = 80
	CapReadonlyMem              Capability = 81
	CapIRQFDResample            Capability = 82
	CapPPCBookeWatchdog         Capability = 83
	CapPPCHTABFD                Capability = 84
	CapS390CSSSupport           Capability = 85
	CapPPCEPR                   Capability = 86
	CapARMPSCI                  Capability = 87
	CapARMSetDeviceAddr         Capability = 88
	CapDeviceCtrl               Capability = 89
	CapIRQMPIC                  Capability = 90
	CapPPCRTAS                  Capability = 91
	CapIRQXICS                  Capability = 92
	CapARMEL132Bit              Capability = 93
	CapSPAPRMultiTCE            Capability = 94
	CapEXTEmulCPUID             Capability = 95
	CapHyperVTime               Capability = 96
	CapIOAPICPolarityIgnored    Capability = 97
	CapEnableCapVM              Capability = 98
	CapS390IRQChip              Capability = 99
	CapIOEventFDNoLength        Capability = 100
	CapVMAttributes             Capability = 101
	CapARMPSCI02                Capability = 102
	CapPPCFixupHCall            Capability = 103
	CapPPCEnableHCall           Capability = 104
	CapCheckExtensionVM         Capability = 105
	CapS390UserSIGP             Capability = 106
	CapS390VectorRegisters      Capability = 107
	CapS390MemOp                Capability = 108
	CapS390UserSTSI             Capability = 109
	CapS390SKeys                Capability = 110
	CapMIPSFPU                  Capability = 111
	CapMIPSMSA                  Capability = 112
	CapS390InjectIRQ            Capability = 113
	CapS390IRQState             Capability = 114
	CapPPCHWRNG                 Capability = 115
	CapDisableQuirks            Capability = 116
	CapX86SMM                   Capability = 117
	CapMultiAddressSpace        Capability = 118
	CapGuestDebugHWBPS          Capability = 119
	CapGuestDebugHWWPS          Capability = 120
	CapSplitIRQChip             Capability = 121
	CapIOEventFDAnyLength       Capability = 122
	CapHyperVSynIC              Capability = 123
	CapS390RI                   Capability = 124
	CapSPAPRTCE64               Capability = 125
	CapARMPMUV3                 Capability = 126
	CapVCPUAttributes           Capability = 127
	CapMaxVCPUID                Capability = 128
	CapX2APICAPI                Capability = 129
	CapS390UserInstr0           Capability = 130
	CapMSIDevID                 Capability = 131
	CapPPCHTM                   Capability = 132
	CapSPAPRResizeHPT           Capability = 133
	CapPPCMMURadix              Capability = 134
	CapPPCMMUHashV3             Capability = 135
	CapImmediateExit            Capability = 136
	CapMIPSVZ                   Capability = 137
	CapMIPSTE                   Capability = 138
	CapMIPS64Bit                Capability = 139
	CapS390GS                   Capability = 140
	CapS390AIS                  Capability = 141
	CapSPAPRTCEVFIO             Capability = 142
	CapX86GuestMWait            Capability = 143
	CapARMUserIRQ               Capability = 144
	CapS390CMMAMigration        Capability = 145
	CapPPCFWNMI                 Capability = 146
	CapPPCSMTPossible           Capability = 147
	CapHyperVSynIC2             Capability = 148
	CapHyperVVPIndex            Capability = 149
)

var capNames = map[Capability]string{
	CapIRQChip:                  "CapIRQChip",
	CapHLT:                      "CapHLT",
	CapMMUShadowCacheControl:    "CapMMUShadowCacheControl",
	CapUserMemory:               "CapUserMemory",
	CapSetTSSAddr:               "CapSetTSSAddr",
	CapVAPIC:                    "CapVAPIC",
	CapEXTCPUID:                 "CapEXTCPUID",
	CapClockSource:              "CapClockSource",
	CapNRVCPUs:                  "CapNRVCPUs",
	CapNRMemSlots:               "CapNRMemSlots",
	CapPIT:                      "CapPIT",
	CapNOPIODelay:               "CapNOPIODelay",
	CapPVMMU:                    "CapPVMMU",
	CapMPState:                  "CapMPState",
	CapCoalescedMMIO:            "CapCoalescedMMIO",
	CapSyncMMU:                  "CapSyncMMU",
	CapIOMMU:                    "CapIOMMU",
	CapDestroyMemoryRegionWorks: "CapDestroyMemoryRegionWorks",
	CapUserNMI:                  "CapUserNMI",
	CapSetGuestDebug:            "CapSetGuestDebug",
	CapReinjectControl:          "CapReinjectControl",
	CapIRQRouting:               "CapIRQRouting",
	CapIRQInjectStatus:          "CapIRQInjectStatus",
	CapAssignDevIRQ:             "CapAssignDevIRQ",
	CapJoinMemoryRegionsWorks:   "CapJoinMemoryRegionsWorks",
	CapMCE:                      "CapMCE",
	CapIRQFD:                    "CapIRQFD",
	CapPIT2:                     "CapPIT2",
	CapSetBootCPUID:             "CapSetBootCPUID",
	CapPITState2:                "CapPITState2",
	CapIOEventFD:                "CapIOEventFD",
	CapSetIdentityMapAddr:       "CapSetIdentityMapAddr",
	CapXENHVM:                   "CapXENHVM",
	CapAdjustClock:              "CapAdjustClock",
	CapInternalErrorData:        "CapInternalErrorData",
	CapVCPUEvents:               "CapVCPUEvents",
	CapS390PSW:                  "CapS390PSW",
	CapPPCSegState:              "CapPPCSegState",
	CapHyperV:                   "CapHyperV",
	CapHyperVVAPIC:              "CapHyperVVAPIC",
	CapHyperVSpin:               "CapHyperVSpin",
	CapPCISegment:               "CapPCISegment",
	CapPPCPairedSingles:         "CapPPCPairedSingles",
	CapINTRShadow:               "CapINTRShadow",
	CapDebugRegs:                "CapDebugRegs",
	CapX86RobustSinglestep:      "CapX86RobustSinglestep",
	CapPPCOSI:                   "CapPPCOSI",
	CapPPCUnsetIRQ:              "CapPPCUnsetIRQ",
	CapEnableCap:                "CapEnableCap",
	CapXSave:                    "CapXSave",
	CapXCRS:                     "CapXCRS",
	CapPPCGetPVInfo:             "CapPPCGetPVInfo",
	CapPPCIRQLevel:              "CapPPCIRQLevel",
	CapASYNCPF:                  "CapASYNCPF",
	CapTSCControl:               "CapTSCControl",
	CapGetTSCKHz:                "CapGetTSCKHz",
	CapPPCBookeSRegs:            "CapPPCBookeSRegs",
	CapSPAPRTCE:                 "CapSPAPRTCE",
	CapPPCSMT:                   "CapPPCSMT",
	CapPPCRMA:                   "CapPPCRMA",
	CapMaxVCPUs:                 "CapMaxVCPUs",
	CapPPCHIOR:                  "CapPPCHIOR",
	CapPPCPAPR:                  "CapPPCPAPR",
	CapSWTLB:                    "CapSWTLB",
	CapOneReg:                   "CapOneReg",
	CapS390GMap:                 "CapS390GMap",
	CapTSCDeadlineTimer:         "CapTSCDeadlineTimer",
	CapS390UControl:             "CapS390UControl",
	CapSyncRegs:                 "CapSyncRegs",
	CapPCI23:                    "CapPCI23",
	CapKVMClockCtrl:             "CapKVMClockCtrl",
	CapSignalMSI:                "CapSignalMSI",
	CapPPCGetSMMUInfo:           "CapPPCGetSMMUInfo",
	CapS390COW:                  "CapS390COW",
	CapPPCAllocHTAB:             "CapPPCAllocHTAB",
	CapReadonlyMem:              "CapReadonlyMem",
	CapIRQFDResample:            "CapIRQFDResample",
	CapPPCBookeWatchdog:         "CapPPCBookeWatchdog",
	CapPPCHTABFD:                "CapPPCHTABFD",
	CapS390CSSSupport:           "CapS390CSSSupport",
	CapPPCEPR:                   "CapPPCEPR",
	CapARMPSCI:                  "CapARMPSCI",
	CapARMSetDeviceAddr:         "CapARMSetDeviceAddr",
	CapDeviceCtrl:               "CapDeviceCtrl",
	CapIRQMPIC:                  "CapIRQMPIC",
	CapPPCRTAS:                  "CapPPCRTAS",
	CapIRQXICS:                  "CapIRQXICS",
	CapARMEL132Bit:              "CapARMEL132Bit",
	CapSPAPRMultiTCE:            "CapSPAPRMultiTCE",
	CapEXTEmulCPUID:             "CapEXTEmulCPUID",
	CapHyperVTime:               "CapHyperVTime",
	CapIOAPICPolarityIgnored:    "CapIOAPICPolarityIgnored",
	CapEnableCapVM:              "CapEnableCapVM",
	CapS390IRQChip:              "CapS390IRQChip",
	CapIOEventFDNoLength:        "CapIOEventFDNoLength",
	CapVMAttributes:             "CapVMAttributes",
	CapARMPSCI02:                "CapARMPSCI02",
	CapPPCFixupHCall:            "CapPPCFixupHCall",
	CapPPCEnableHCall:           "CapPPCEnableHCall",
	CapCheckExtensionVM:         "CapCheckExtensionVM",
	CapS390UserSIGP:             "CapS390UserSIGP",
	CapS390VectorRegisters:      "CapS390VectorRegisters",
	CapS390MemOp:                "CapS390MemOp",
	CapS390UserSTSI:             "CapS390UserSTSI",
	CapS390SKeys:                "CapS390SKeys",
	CapMIPSFPU:                  "CapMIPSFPU",
	CapMIPSMSA:                  "CapMIPSMSA",
	CapS390InjectIRQ:            "CapS390InjectIRQ",
	CapS390IRQState:             "CapS390IRQState",
	CapPPCHWRNG:                 "CapPPCHWRNG",
	CapDisableQuirks:            "CapDisableQuirks",
	CapX86SMM:                   "CapX86SMM",
	CapMultiAddressSpace:        "CapMultiAddressSpace",
	CapGuestDebugHWBPS:          "CapGuestDebugHWBPS",
	CapGuestDebugHWWPS:          "CapGuestDebugHWWPS",
	CapSplitIRQChip:             "CapSplitIRQChip",
	CapIOEventFDAnyLength:       "CapIOEventFDAnyLength",
	CapHyperVSynIC:              "CapHyperVSynIC",
	CapS390RI:                   "CapS390RI",
	CapSPAPRTCE64:               "CapSPAPRTCE64",
	CapARMPMUV3:                 "CapARMPMUV3",
	CapVCPUAttributes:           "CapVCPUAttributes",
	CapMaxVCPUID:                "CapMaxVCPUID",
	CapX2APICAPI:                "CapX2APICAPI",
	CapS390UserInstr0:           "CapS390UserInstr0",
	CapMSIDevID:                 "CapMSIDevID",
	CapPPCHTM:                   "CapPPCHTM",
	CapSPAPRResizeHPT:           "CapSPAPRResizeHPT",
	CapPPCMMURadix:              "CapPPCMMURadix",
	CapPPCMMUHashV3:             "CapPPCMMUHashV3",
	CapImmediateExit:            "CapImmediateExit",
	CapMIPSVZ:                   "CapMIPSVZ",
	CapMIPSTE:                   "CapMIPSTE",
	CapMIPS64Bit:                "CapMIPS64Bit",
	CapS390GS:                   "CapS390GS",
	CapS390AIS:                  "CapS390AIS",
	CapSPAPRTCEVFIO:             "CapSPAPRTCEVFIO",
	CapX86GuestMWait:            "CapX86GuestMWait",
	CapARMUserIRQ:               "CapARMUserIRQ",
	CapS390CMMAMigration:        "CapS390CMMAMigration",
	CapPPCFWNMI:                 "CapPPCFWNMI",
	CapPPCSMTPossible:           "CapPPCSMTPossible",
	CapHyperVSynIC2:             "CapHyperVSynIC2",
	CapHyperVVPIndex:            "CapHyperVVPIndex",
}

func (c Capability) String() string {
	if s, ok := capNames[c]; ok {
		return s
	}

	return fmt.Sprintf("Capability(%d)", uint(c))
}

// Capabilities lists every capability the selected header defines, in
// ascending order.
func Capabilities() []Capability {
	caps := make([]Capability, 0, len(capNames))
	for c := Capability(0); c <= lastCapability; c++ {
		if _, ok := capNames[c]; ok {
			caps = append(caps, c)
		}
	}

	return caps
}
