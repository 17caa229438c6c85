//go:build kvm_v4_14_0

package kvm

const lastCapability = CapHyperVVPIndex
