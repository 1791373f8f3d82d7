// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"time"

	"github.com/digitalocean/go-qemu/qmp"
)

const qmpTimeout = 2 * time.Second

var qmpQuitCommand = []byte(`{"execute":"quit"}`)

// quit requests QEMU to terminate via the QMP socket at the given path.
func quit(socket string) error {
	monitor, err := qmp.NewSocketMonitor("unix", socket, qmpTimeout)
	if err != nil {
		return fmt.Errorf("qmp dial: %w", err)
	}

	err = monitor.Connect()
	if err != nil {
		return fmt.Errorf("qmp connect: %w", err)
	}

	defer monitor.Disconnect() //nolint:errcheck

	_, err = monitor.Run(qmpQuitCommand)
	if err != nil {
		return fmt.Errorf("qmp quit: %w", err)
	}

	return nil
}
