// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"os"
	"runtime"
)

// KVMAvailable checks if KVM support is available for i386 guests. This
// requires an x86 host with accessible /dev/kvm.
func KVMAvailable() bool {
	switch runtime.GOARCH {
	case "386", "amd64":
	default:
		return false
	}

	f, err := os.OpenFile("/dev/kvm", os.O_WRONLY, 0)
	if err != nil {
		return false
	}

	_ = f.Close()

	return true
}
