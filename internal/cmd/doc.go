// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for v86-system-i386. It
// handles argument sources, flag parsing, error handling and output handling.
package cmd
