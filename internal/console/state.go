// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

const (
	// EscapeByte starts an escape sequence (Ctrl-A).
	EscapeByte byte = 0x01

	// ExitHint is printed for interactive sessions.
	ExitHint = "Press Ctrl-A x to exit."
)

// State is the escape state of a host input stream.
type State int

const (
	// Normal passes input through.
	Normal State = iota
	// EscapePending waits for the command byte following [EscapeByte].
	EscapePending
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case EscapePending:
		return "escape-pending"
	default:
		return "unknown"
	}
}

// Action is what to do for a single input byte.
type Action struct {
	// Bytes to send to the guest in order. May be empty.
	Forward []byte
	// Shutdown is requested.
	Shutdown bool
}

// Step returns the next state and the action for the given input byte.
func Step(state State, b byte) (State, Action) {
	if state == EscapePending {
		switch b {
		case 'x', 'X':
			return Normal, Action{Shutdown: true}
		default:
			return Normal, Action{Forward: []byte{EscapeByte, b}}
		}
	}

	if b == EscapeByte {
		return EscapePending, Action{}
	}

	return Normal, Action{Forward: []byte{b}}
}
