// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package session

// Engine is a machine with a serial console that can be started and
// destroyed.
type Engine interface {
	// AddSerialListener adds a function called for every byte of serial
	// output. Must be called before Start.
	AddSerialListener(fn func(byte))
	Start() error
	SerialSend(data []byte) error

	// Done is closed once the engine terminated on its own or was
	// destroyed.
	Done() <-chan struct{}
	Err() error
	Destroy() error
}
