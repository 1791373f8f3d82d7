// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

// NormalizeArgs rewrites single dash long flags like "-hda" into the double
// dash form "--hda". Short flags like "-m", double dash flags, values and the
// lone "-" and "--" are kept as they are. Normalizing twice yields the same
// result.
func NormalizeArgs(args []string) []string {
	normalized := make([]string, len(args))

	for idx, arg := range args {
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			arg = "-" + arg
		}

		normalized[idx] = arg
	}

	return normalized
}
