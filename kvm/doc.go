// Package kvm mirrors the x86_64 KVM userspace ABI: the structs, unions,
// bitfields, constants and ioctl request numbers of <linux/kvm.h> and
// <asm/kvm.h>, plus thin wrappers that issue the ioctls.
//
// Every struct has the exact size, alignment and field offsets of its C
// counterpart, so a pointer to one can be handed to the kernel as is.
// Padding is always spelled out as blank fields. Unions are a byte array
// aligned like the widest member, with typed accessors that reinterpret
// the same bytes; the last written interpretation wins.
//
// Two header snapshots are available. Linux 4.20 is the default; building
// with -tags kvm_v4_14_0 selects Linux 4.14 instead.
package kvm
