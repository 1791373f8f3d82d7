// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import "errors"

var (
	// ErrInvalidSizeFormat is returned if a size string does not match the
	// "number[K|M|G|T]" format.
	ErrInvalidSizeFormat = errors.New("invalid memory size format")

	// ErrEmptyPath is returned if an image path is empty.
	ErrEmptyPath = errors.New("path must not be empty")
)
