// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"strings"
)

const (
	// NetworkModeUser is the only network mode handled. Other modes are
	// dropped silently, so engines may add modes without this package
	// knowing them.
	NetworkModeUser = "user"

	// VirtFSModeProxy is the only virtual filesystem mode handled. Other
	// modes are dropped silently like network modes.
	VirtFSModeProxy = "proxy"

	// VirtFSProxyURLKey is the [VirtFSDescriptor] key of the proxy target.
	VirtFSProxyURLKey = "proxy_url"
)

// NetworkDescriptor is the network device description passed to the engine,
// like {"type": "virtio", "relay_url": "ws://..."}.
type NetworkDescriptor map[string]string

// VirtFSDescriptor is the virtual filesystem description passed to the
// engine. It has the single key [VirtFSProxyURLKey].
type VirtFSDescriptor map[string]string

// ParseNetworkDescriptor parses "user,key=value,...". It returns nil for any
// other mode. Values may contain "=". Tokens without "=" are ignored.
func ParseNetworkDescriptor(s string) NetworkDescriptor {
	mode, rest, _ := strings.Cut(s, ",")
	if mode != NetworkModeUser {
		return nil
	}

	desc := NetworkDescriptor{}

	if rest == "" {
		return desc
	}

	for _, token := range strings.Split(rest, ",") {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" {
			continue
		}

		desc[key] = value
	}

	return desc
}

// ParseVirtFSDescriptor parses "proxy,<url>". Everything after the first
// comma is the target. It returns nil for any other mode and if the target is
// empty.
func ParseVirtFSDescriptor(s string) VirtFSDescriptor {
	mode, target, _ := strings.Cut(s, ",")
	if mode != VirtFSModeProxy || target == "" {
		return nil
	}

	return VirtFSDescriptor{VirtFSProxyURLKey: target}
}
