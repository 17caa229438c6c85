//go:build kvm_v4_14_0

package kvm_test

import (
	"testing"

	"github.com/bobuhiro11/gokvm-bindings/kvm"
)

func TestCapabilityStringerV4_14(t *testing.T) {
	t.Parallel()

	// Capabilities added after 4.14 have no name in this header.
	runCapTests(t, []capTest{
		{kvm.Capability(150), "Capability(150)"},
		{kvm.Capability(162), "Capability(162)"},
	})
}
