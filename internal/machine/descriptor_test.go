// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine_test

import (
	"testing"

	"github.com/aibor/v86system/internal/machine"
	"github.com/stretchr/testify/assert"
)

func TestParseNetworkDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected machine.NetworkDescriptor
	}{
		{
			name:  "user with pairs",
			input: "user,type=virtio,relay_url=ws://x",
			expected: machine.NetworkDescriptor{
				"type":      "virtio",
				"relay_url": "ws://x",
			},
		},
		{
			name:     "user only",
			input:    "user",
			expected: machine.NetworkDescriptor{},
		},
		{
			name:  "value with equal sign",
			input: "user,hostfwd=tcp::2222-:22,query=a=b",
			expected: machine.NetworkDescriptor{
				"hostfwd": "tcp::2222-:22",
				"query":   "a=b",
			},
		},
		{
			name:  "tokens without value ignored",
			input: "user,restrict,type=ne2k,=empty",
			expected: machine.NetworkDescriptor{
				"type": "ne2k",
			},
		},
		{
			name:  "unknown mode",
			input: "bridge,foo=bar",
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, machine.ParseNetworkDescriptor(tt.input))
		})
	}
}

func TestParseVirtFSDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected machine.VirtFSDescriptor
	}{
		{
			name:  "proxy",
			input: "proxy,ws://localhost:8080/9p",
			expected: machine.VirtFSDescriptor{
				"proxy_url": "ws://localhost:8080/9p",
			},
		},
		{
			name:  "proxy target with comma",
			input: "proxy,/run/9p.sock,extra",
			expected: machine.VirtFSDescriptor{
				"proxy_url": "/run/9p.sock,extra",
			},
		},
		{
			name:  "proxy without target",
			input: "proxy",
		},
		{
			name:  "unknown mode",
			input: "local,/srv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, machine.ParseVirtFSDescriptor(tt.input))
		})
	}
}
