// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"fmt"

	"github.com/samber/lo"
)

// BootOrderCode is the device the guest firmware boots from first.
//
// The zero value is no code at all and leaves the engine default in effect.
type BootOrderCode uint8

const (
	BootFloppyA  BootOrderCode = 0x01
	BootFloppyB  BootOrderCode = 0x02
	BootHardDisk BootOrderCode = 0x80
	BootCDROM    BootOrderCode = 0x81
	BootNetwork  BootOrderCode = 0x82
)

// DefaultBootOrder is the boot letter of the engine default device.
const DefaultBootOrder = "c"

var bootOrderCodes = map[byte]BootOrderCode{
	'a': BootFloppyA,
	'b': BootFloppyB,
	'c': BootHardDisk,
	'd': BootCDROM,
	'n': BootNetwork,
}

// MapBootOrder returns the [BootOrderCode] for the first letter of the given
// boot order string. Only the first device is used. Unknown letters and the
// empty string map to [BootHardDisk].
func MapBootOrder(order string) BootOrderCode {
	if order == "" {
		return BootHardDisk
	}

	return lo.ValueOr(bootOrderCodes, order[0], BootHardDisk)
}

// Letter returns the boot device letter for the code, or an empty string for
// unknown codes.
func (c BootOrderCode) Letter() string {
	for letter, code := range bootOrderCodes {
		if code == c {
			return string(letter)
		}
	}

	return ""
}

// String implements [fmt.Stringer].
func (c BootOrderCode) String() string {
	switch c {
	case BootFloppyA:
		return "floppy-a"
	case BootFloppyB:
		return "floppy-b"
	case BootHardDisk:
		return "hard-disk"
	case BootCDROM:
		return "cdrom"
	case BootNetwork:
		return "network"
	default:
		return fmt.Sprintf("0x%02x", uint8(c))
	}
}
