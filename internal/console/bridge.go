// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"io"
)

// Bridge processes the host input of a single interactive session.
//
// It is not safe for concurrent use. Input must be passed in arrival order.
type Bridge struct {
	state State
}

// State returns the current escape state.
func (b *Bridge) State() State {
	return b.state
}

// Process runs the given input through [Step] byte by byte. It returns the
// bytes to send to the guest and if shutdown was requested. Input following a
// shutdown request is discarded.
func (b *Bridge) Process(input []byte) ([]byte, bool) {
	forward := make([]byte, 0, len(input)+1)

	for _, c := range input {
		var action Action

		b.state, action = Step(b.state, c)

		forward = append(forward, action.Forward...)

		if action.Shutdown {
			return forward, true
		}
	}

	return forward, false
}

// Relay writes a single guest output byte to the host output. It is written
// immediately on its own. Bytes are not re-encoded, so the host terminal
// receives exactly what the guest sent.
func Relay(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err //nolint:wrapcheck
}
