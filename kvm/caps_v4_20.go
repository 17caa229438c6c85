//go:build !kvm_v4_14_0

package kvm

const (
	CapS390AISMigration   Capability = 150
	CapPPCGetCPUChar      Capability = 151
	CapS390BPB            Capability = 152
	CapGetMSRFeatures     Capability = 153
	CapHyperVEventFD      Capability = 154
	CapHyperVTLBFlush     Capability = 155
	CapS390HPage1M        Capability = 156
	CapNestedState        Capability = 157
	CapARMInjectSErrorESR Capability = 158
	CapMSRPlatformInfo    Capability = 159
	CapPPCNestedHV        Capability = 160
	CapHyperVSendIPI      Capability = 161
	CapCoalescedPIO       Capability = 162
)

const lastCapability = CapCoalescedPIO

func init() {
	for c, s := range map[Capability]string{
		CapS390AISMigration:   "CapS390AISMigration",
		CapPPCGetCPUChar:      "CapPPCGetCPUChar",
		CapS390BPB:            "CapS390BPB",
		CapGetMSRFeatures:     "CapGetMSRFeatures",
		CapHyperVEventFD:      "CapHyperVEventFD",
		CapHyperVTLBFlush:     "CapHyperVTLBFlush",
		CapS390HPage1M:        "CapS390HPage1M",
		CapNestedState:        "CapNestedState",
		CapARMInjectSErrorESR: "CapARMInjectSErrorESR",
		CapMSRPlatformInfo:    "CapMSRPlatformInfo",
		CapPPCNestedHV:        "CapPPCNestedHV",
		CapHyperVSendIPI:      "CapHyperVSendIPI",
		CapCoalescedPIO:       "CapCoalescedPIO",
	} {
		capNames[c] = s
	}
}
