//go:build linux && amd64 && kvm_v4_14_0

package kvm

// SyncRegs is empty on x86 before Linux 4.16.
type SyncRegs struct{}
