// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	assetsDirName = "assets"

	// BIOSFileName is the bundled system BIOS image in the assets dir.
	BIOSFileName = "seabios.bin"

	// VGABIOSFileName is the bundled video BIOS image in the assets dir.
	VGABIOSFileName = "vgabios.bin"
)

// DefaultAssetsDir returns the assets directory next to the running
// executable. Symlinks to the executable are followed, so an installed
// symlink in a bin dir still finds the assets of the actual install.
func DefaultAssetsDir() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("get own path: %w", err)
	}

	self, err = filepath.EvalSymlinks(self)
	if err != nil {
		return "", fmt.Errorf("resolve own path: %w", err)
	}

	return filepath.Join(filepath.Dir(self), assetsDirName), nil
}
