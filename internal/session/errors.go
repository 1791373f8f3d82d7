// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import "errors"

// ErrAlreadyRun is returned if a [Session] is run more than once.
var ErrAlreadyRun = errors.New("session already run")
