// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
)

var sizeRE = regexp.MustCompile(`^(\d+(?:\.\d+)?)([KMGT]?)$`)

// Values without unit are megabytes. "B" is known but not accepted by
// [sizeRE].
var sizeMultipliers = map[string]datasize.ByteSize{
	"":  datasize.MB,
	"B": datasize.B,
	"K": datasize.KB,
	"M": datasize.MB,
	"G": datasize.GB,
	"T": datasize.TB,
}

// ParseMemorySize parses size strings like "512M", "1G" or "1.5k" into a
// byte count, floored to whole bytes.
//
// An empty string is no value and returns 0 without error. Anything not
// matching "number[K|M|G|T]" (case-insensitive) returns
// [ErrInvalidSizeFormat].
func ParseMemorySize(s string) (datasize.ByteSize, error) {
	if s == "" {
		return 0, nil
	}

	match := sizeRE.FindStringSubmatch(strings.ToUpper(s))
	if match == nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSizeFormat, s)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidSizeFormat, s, err)
	}

	size := math.Floor(value * float64(sizeMultipliers[match[2]]))
	if size >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: %s: out of range", ErrInvalidSizeFormat, s)
	}

	return datasize.ByteSize(size), nil
}
