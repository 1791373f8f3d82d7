// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aibor/v86system/internal/console"
)

const (
	inputBufferSize  = 256
	outputBufferSize = 4096
)

// Session connects the host terminal with the serial console of an [Engine].
//
// A session ends once the user enters the exit escape sequence, the context
// is cancelled or the engine terminates on its own. In any case the terminal
// is restored and the engine is destroyed.
type Session struct {
	engine   Engine
	terminal Terminal
	stdin    io.Reader
	stdout   io.Writer

	bridge  console.Bridge
	restore func() error

	// Closed on shutdown, so the listener and the input reader do not block
	// on the loop anymore.
	stop chan struct{}

	runOnce      sync.Once
	shutdownOnce sync.Once
}

// New creates a new [Session]. The terminal may be nil if stdin is not
// backed by a file.
func New(
	engine Engine,
	terminal Terminal,
	stdin io.Reader,
	stdout io.Writer,
) *Session {
	return &Session{
		engine:   engine,
		terminal: terminal,
		stdin:    stdin,
		stdout:   stdout,
		stop:     make(chan struct{}),
	}
}

// Run starts the engine and runs the session until it ends. It returns nil
// if the session ended by user request or cancellation of the context. If
// the engine terminated on its own with a failure, that error is returned.
//
// Run can be called only once.
func (s *Session) Run(ctx context.Context) error {
	err := ErrAlreadyRun

	s.runOnce.Do(func() {
		err = s.run(ctx)
	})

	return err
}

func (s *Session) run(ctx context.Context) error {
	output := make(chan byte, outputBufferSize)

	s.engine.AddSerialListener(func(b byte) {
		select {
		case output <- b:
		case <-s.stop:
		}
	})

	err := s.engine.Start()
	if err != nil {
		s.shutdown()
		return fmt.Errorf("start engine: %w", err)
	}

	s.setupTerminal()

	input := s.readInput()

	for {
		select {
		case chunk, ok := <-input:
			if !ok {
				// Without input the guest keeps running until one of the
				// other triggers.
				slog.Debug("Input closed")

				input = nil

				continue
			}

			if s.handleInput(chunk) {
				slog.Debug("Exit requested")
				s.shutdown()

				return nil
			}
		case b := <-output:
			s.relay(b)
		case <-ctx.Done():
			slog.Debug("Session cancelled", slog.Any("cause", context.Cause(ctx)))
			s.shutdown()

			return nil
		case <-s.engine.Done():
			// The engine does not produce output anymore, but some might
			// still be buffered.
			for len(output) > 0 {
				s.relay(<-output)
			}

			err := s.engine.Err()
			s.shutdown()

			if err != nil {
				return fmt.Errorf("engine: %w", err)
			}

			slog.Debug("Engine terminated")

			return nil
		}
	}
}

// handleInput passes the chunk through the bridge and sends the result to
// the guest. It returns true if shutdown was requested.
func (s *Session) handleInput(chunk []byte) bool {
	forward, exit := s.bridge.Process(chunk)

	if len(forward) > 0 {
		err := s.engine.SerialSend(forward)
		if err != nil {
			slog.Warn("Failed to send input", slog.Any("error", err))
		}
	}

	return exit
}

func (s *Session) relay(b byte) {
	err := console.Relay(s.stdout, b)
	if err != nil {
		slog.Debug("Failed to relay output", slog.Any("error", err))
	}
}

func (s *Session) setupTerminal() {
	if s.terminal == nil || !s.terminal.IsTerminal() {
		slog.Debug("Input is not a terminal, skip raw mode")
		return
	}

	restore, err := s.terminal.MakeRaw()
	if err != nil {
		slog.Warn("Failed to set terminal to raw mode", slog.Any("error", err))
		return
	}

	s.restore = restore

	fmt.Fprint(s.stdout, console.ExitHint+"\r\n")
}

// readInput reads stdin in a separate goroutine. The returned channel is
// closed on end of input or read failure.
//
// A read on a terminal can not be interrupted, so the goroutine might stay
// blocked until the process exits.
func (s *Session) readInput() <-chan []byte {
	input := make(chan []byte)

	go func() {
		defer close(input)

		buf := make([]byte, inputBufferSize)

		for {
			n, err := s.stdin.Read(buf)
			if n > 0 {
				select {
				case input <- append([]byte(nil), buf[:n]...):
				case <-s.stop:
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Debug("Failed to read input", slog.Any("error", err))
				}

				return
			}
		}
	}()

	return input
}

// shutdown restores the terminal and destroys the engine. Only the first
// call has an effect.
func (s *Session) shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.stop)

		if s.restore != nil {
			err := s.restore()
			if err != nil {
				slog.Warn("Failed to restore terminal", slog.Any("error", err))
			}
		}

		err := s.engine.Destroy()
		if err != nil {
			slog.Warn("Failed to destroy engine", slog.Any("error", err))
		}
	})
}
