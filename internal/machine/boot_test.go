// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine_test

import (
	"testing"

	"github.com/aibor/v86system/internal/machine"
	"github.com/stretchr/testify/assert"
)

func TestMapBootOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected machine.BootOrderCode
	}{
		{name: "empty", input: "", expected: machine.BootHardDisk},
		{name: "unknown", input: "z", expected: machine.BootHardDisk},
		{name: "upper case", input: "D", expected: machine.BootHardDisk},
		{name: "floppy a", input: "a", expected: 0x01},
		{name: "floppy b", input: "b", expected: 0x02},
		{name: "hard disk", input: "c", expected: 0x80},
		{name: "cdrom", input: "d", expected: 0x81},
		{name: "network", input: "n", expected: 0x82},
		{name: "first only", input: "dc", expected: machine.BootCDROM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, machine.MapBootOrder(tt.input))
		})
	}
}

func TestBootOrderCode_Letter(t *testing.T) {
	for _, letter := range []string{"a", "b", "c", "d", "n"} {
		assert.Equal(t, letter, machine.MapBootOrder(letter).Letter(), letter)
	}

	assert.Empty(t, machine.BootOrderCode(0).Letter())
}

func TestBootOrderCode_String(t *testing.T) {
	assert.Equal(t, "cdrom", machine.BootCDROM.String())
	assert.Equal(t, "0x42", machine.BootOrderCode(0x42).String())
}
