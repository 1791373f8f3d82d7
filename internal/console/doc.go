// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console bridges the host terminal and the guest serial console.
//
// Host input is passed through to the guest byte by byte, including control
// characters like Ctrl-C. The only exception is the escape character Ctrl-A:
// it addresses the launcher itself. Ctrl-A followed by "x" requests shutdown,
// Ctrl-A followed by anything else sends both bytes to the guest.
//
// Guest output is relayed to the host byte by byte without buffering.
package console
