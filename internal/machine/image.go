// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// ImageReference references an image file the engine loads itself.
type ImageReference struct {
	// Absolute file path or URL.
	URL string `json:"url"`
}

// NewImageReference returns a reference for the given path. The path is
// resolved by [ResolveImagePath]. An empty path returns nil.
func NewImageReference(path string) (*ImageReference, error) {
	if path == "" {
		return nil, nil //nolint:nilnil
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return nil, err
	}

	return &ImageReference{URL: resolved}, nil
}

// ResolveImagePath returns the absolute path for the given path relative to
// the current working directory. URLs are returned as they are.
func ResolveImagePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	if IsURL(path) {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return abs, nil
}

// IsURL reports if the given string is a URL with scheme and host, like
// "https://example.com/disk.img". Plain paths are not.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
