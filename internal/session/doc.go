// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session runs an interactive machine session. It connects the host
// terminal to the serial console of a running engine and owns the shutdown
// of both.
package session
