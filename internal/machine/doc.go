// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package machine provides the machine configuration handed to the emulation
// engine and the parsers turning user input into it.
//
// A [Config] is built once by [Build] from [Options] and is not modified
// afterwards. Image files are never opened here. Their paths are only
// resolved to absolute form, so the engine can report its own load errors.
package machine
