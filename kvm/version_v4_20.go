//go:build !kvm_v4_14_0

package kvm

// HeaderVersion names the kernel header snapshot these bindings mirror.
const HeaderVersion = "4.20.0"
