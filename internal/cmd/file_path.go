// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/aibor/v86system/internal/machine"
)

// imagePath is a [pflag.Value] for image files. Paths are resolved to
// absolute paths when set, URLs are kept as they are. An empty value unsets
// the image.
type imagePath string

func (p *imagePath) String() string {
	return string(*p)
}

func (p *imagePath) Set(s string) error {
	if s == "" {
		*p = ""
		return nil
	}

	path, err := machine.ResolveImagePath(s)
	if err != nil {
		return err //nolint:wrapcheck
	}

	*p = imagePath(path)

	return nil
}

func (*imagePath) Type() string {
	return "file"
}
