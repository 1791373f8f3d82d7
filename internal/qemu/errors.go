// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"strconv"
)

var (
	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrNotStarted is returned if the engine is used before it was started.
	ErrNotStarted = errors.New("engine not started")

	// ErrAlreadyStarted is returned if the engine is started twice.
	ErrAlreadyStarted = errors.New("engine already started")
)

// CommandError wraps any error occurred during QEMU process execution.
type CommandError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	msg := "qemu: " + e.Err.Error()
	if e.ExitCode > 0 {
		msg += " (exit code " + strconv.Itoa(e.ExitCode) + ")"
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
