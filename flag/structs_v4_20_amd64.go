//go:build linux && amd64 && !kvm_v4_14_0

package flag

import "github.com/bobuhiro11/gokvm-bindings/kvm"

func init() {
	structs["NestedState"] = kvm.NestedState{}
	structs["VMXNestedState"] = kvm.VMXNestedState{}
}
