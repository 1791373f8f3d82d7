// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal is the host terminal the session input is read from.
type Terminal interface {
	IsTerminal() bool

	// MakeRaw puts the terminal into raw mode. The returned function
	// restores the previous mode.
	MakeRaw() (func() error, error)
}

// FileTerminal is a [Terminal] backed by a file descriptor.
type FileTerminal struct {
	fd int
}

// NewFileTerminal returns a [FileTerminal] for the given file, usually
// [os.Stdin].
func NewFileTerminal(file *os.File) *FileTerminal {
	return &FileTerminal{fd: int(file.Fd())}
}

// IsTerminal implements [Terminal].
func (t *FileTerminal) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// MakeRaw implements [Terminal].
func (t *FileTerminal) MakeRaw() (func() error, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, fmt.Errorf("make raw: %w", err)
	}

	restore := func() error {
		err := term.Restore(t.fd, state)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}

		return nil
	}

	return restore, nil
}
