// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/aibor/v86system/internal/machine"
	"golang.org/x/sync/errgroup"
)

// DefaultExecutable is the QEMU binary used if none is given.
const DefaultExecutable = "qemu-system-i386"

const (
	serialChardevID = "serial0"
	qmpSocketName   = "qmp.sock"
	readBufferSize  = 4096
)

// Options are engine settings besides the [machine.Config].
type Options struct {
	// QEMU binary. Defaults to [DefaultExecutable].
	Executable string

	// Disable KVM even if available.
	NoKVM bool

	// Stderr of the QEMU process. If not set, os.Stderr is used.
	Stderr io.Writer
}

// Engine is a machine run by a QEMU process.
//
// Listeners must be added before [Engine.Start]. [Engine.Destroy] must be
// called in any case to release the resources.
type Engine struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    io.ReadCloser
	runDir    string
	qmpSocket string

	listeners []func(byte)

	started bool
	group   errgroup.Group
	done    chan struct{}

	destroyOnce sync.Once
	destroyErr  error
}

// New creates a new [Engine] for the given [machine.Config]. The QEMU process
// is not started yet.
func New(cfg machine.Config, opts Options) (*Engine, error) {
	executable := opts.Executable
	if executable == "" {
		executable = DefaultExecutable
	}

	runDir, err := os.MkdirTemp("", "v86system")
	if err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	engine := &Engine{
		runDir:    runDir,
		qmpSocket: filepath.Join(runDir, qmpSocketName),
		done:      make(chan struct{}),
	}

	args := MachineArgs(cfg)
	args = append(args, runtimeArgs(engine.qmpSocket, !opts.NoKVM && KVMAvailable())...)

	argStrings, err := BuildArgumentStrings(args)
	if err != nil {
		_ = os.RemoveAll(runDir)
		return nil, fmt.Errorf("build args: %w", err)
	}

	cmd := exec.Command(executable, argStrings...)
	cmd.Stderr = opts.Stderr

	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	// Keep QEMU out of the terminal's foreground process group, so terminal
	// generated signals reach the launcher only.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	engine.stdin, err = cmd.StdinPipe()
	if err != nil {
		_ = os.RemoveAll(runDir)
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	engine.stdout, err = cmd.StdoutPipe()
	if err != nil {
		_ = os.RemoveAll(runDir)
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	engine.cmd = cmd

	return engine, nil
}

func runtimeArgs(qmpSocket string, kvm bool) []Argument {
	args := []Argument{
		UniqueArg("nodefaults"),
		UniqueArg("no-user-config"),
		UniqueArg("display", "none"),
		UniqueArg("monitor", "none"),
		RepeatableArg("chardev", "stdio", "id="+serialChardevID, "signal=off"),
		RepeatableArg("serial", "chardev:"+serialChardevID),
		UniqueArg("qmp", "unix:"+qmpSocket, "server=on", "wait=off"),
	}

	if kvm {
		args = append(args, UniqueArg("enable-kvm"))
	}

	return args
}

// String returns the QEMU command line.
func (e *Engine) String() string {
	return e.cmd.String()
}

// AddSerialListener adds a function that is called for every byte the guest
// writes to its serial console. Listeners are called in order from a single
// goroutine.
func (e *Engine) AddSerialListener(fn func(byte)) {
	e.listeners = append(e.listeners, fn)
}

// Start starts the QEMU process.
func (e *Engine) Start() error {
	if e.started {
		return ErrAlreadyStarted
	}

	err := e.cmd.Start()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("start: %w", err)}
	}

	e.started = true

	slog.Debug("QEMU started", slog.Int("pid", e.cmd.Process.Pid))

	e.group.Go(func() error {
		defer close(e.done)
		return e.pump()
	})

	return nil
}

// pump passes the serial output to the listeners until the process exits.
func (e *Engine) pump() error {
	buf := make([]byte, readBufferSize)

	for {
		n, readErr := e.stdout.Read(buf)
		for _, b := range buf[:n] {
			for _, fn := range e.listeners {
				fn(b)
			}
		}

		if readErr != nil {
			break
		}
	}

	err := e.cmd.Wait()
	if err != nil {
		cmdErr := &CommandError{Err: err}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}

		return cmdErr
	}

	return nil
}

// SerialSend writes the given bytes to the guest's serial console.
func (e *Engine) SerialSend(data []byte) error {
	if !e.started {
		return ErrNotStarted
	}

	_, err := e.stdin.Write(data)
	if err != nil {
		return fmt.Errorf("serial send: %w", err)
	}

	return nil
}

// Done returns a channel that is closed once the QEMU process exited.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Err returns the error the QEMU process exited with. It blocks until the
// process exited and must not be called before [Engine.Start].
func (e *Engine) Err() error {
	return e.group.Wait() //nolint:wrapcheck
}

// Destroy terminates the QEMU process and releases all resources. It asks
// QEMU to quit and kills it if that fails. Only the first call has an
// effect, further calls return the same result.
func (e *Engine) Destroy() error {
	e.destroyOnce.Do(func() {
		e.destroyErr = e.destroy()
	})

	return e.destroyErr
}

func (e *Engine) destroy() error {
	defer func() {
		err := os.RemoveAll(e.runDir)
		if err != nil {
			slog.Warn("Failed to remove runtime dir",
				slog.String("path", e.runDir),
				slog.Any("error", err))
		}
	}()

	if !e.started {
		return nil
	}

	select {
	case <-e.done:
	default:
		err := quit(e.qmpSocket)
		if err != nil {
			slog.Debug("QEMU quit failed, killing it", slog.Any("error", err))

			err := e.cmd.Process.Kill()
			if err != nil && !errors.Is(err, os.ErrProcessDone) {
				return &CommandError{Err: fmt.Errorf("kill: %w", err)}
			}
		}
	}

	<-e.done

	_ = e.stdin.Close()

	return nil
}
