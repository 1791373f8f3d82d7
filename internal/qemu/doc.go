// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides an emulation engine for a [machine.Config] backed by
// a qemu-system-i386 process. It expects the QEMU binary to be present on the
// system.
//
// The guest's first serial port is connected to the process' stdio. Guest
// output is passed to listeners byte by byte, input is written to the
// process' stdin. The engine is shut down via QMP, so QEMU can flush its
// disk images before it exits.
//
// The 9p proxy filesystem driver used for virtfs was removed in QEMU 8.1.
// Newer QEMU binaries fail to start a machine with virtfs configured.
package qemu
