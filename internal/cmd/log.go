// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"io"
	"log/slog"
)

func setupLogging(writer io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		&rawTerminalWriter{writer},
		&slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: dropTime,
		},
	)))
}

func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return attr
}

// rawTerminalWriter terminates lines with "\r\n", so log records stay
// readable while the terminal is in raw mode.
type rawTerminalWriter struct {
	w io.Writer
}

func (w *rawTerminalWriter) Write(p []byte) (int, error) {
	_, err := w.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(p), nil
}
