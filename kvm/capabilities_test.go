package kvm_test

import (
	"testing"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

type capTest struct {
	value kvm.Capability
	want  string
}

func runCapTests(t *testing.T, tests []capTest) {
	t.Helper()

	for _, test := range tests {
		test := test
		t.Run(test.want, func(t *testing.T) {
			t.Parallel()

			if got := test.value.String(); got != test.want {
				t.Errorf("Capability(%d): have: %s, want: %s", uint(test.value), got, test.want)
			}
		})
	}
}

func TestCapabilityStringer(t *testing.T) {
	t.Parallel()

	runCapTests(t, []capTest{
		{kvm.CapIRQChip, "CapIRQChip"},
		{kvm.CapMPState, "CapMPState"},
		{kvm.CapIOMMU, "CapIOMMU"},
		{kvm.CapIRQRouting, "CapIRQRouting"},
		{kvm.CapKVMClockCtrl, "CapKVMClockCtrl"},
		{kvm.CapHyperVVPIndex, "CapHyperVVPIndex"},
		{kvm.Capability(255), "Capability(255)"},
	})
}

func TestCapabilitiesAscending(t *testing.T) {
	t.Parallel()

	caps := kvm.Capabilities()
	if len(caps) == 0 || caps[0] != kvm.CapIRQChip {
		t.Fatalf("Capabilities() starts with %v", caps)
	}

	for i := 1; i < len(caps); i++ {
		if caps[i] <= caps[i-1] {
			t.Errorf("Capabilities()[%d] = %d after %d", i, caps[i], caps[i-1])
		}
	}
}
