// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/v86system/internal/machine"
	"github.com/aibor/v86system/internal/qemu"
	"github.com/aibor/v86system/internal/session"
	"sigs.k8s.io/yaml"
)

const (
	exitCodeOK    = 0
	exitCodeError = 1
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// terminal returns the [session.Terminal] for stdin, if it is backed by a
// file.
func (cfg IO) terminal() session.Terminal {
	file, ok := cfg.Stdin.(*os.File)
	if !ok {
		return nil
	}

	return session.NewFileTerminal(file)
}

func loadFlags(args []string, cfg IO) (*flags, error) {
	err := LoadDotEnv(dotEnvFile)
	if err != nil {
		return nil, err
	}

	args, err = MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stdout, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	slog.Debug("Parsed args", slog.Any("args", args))

	return flags, nil
}

func printConfig(w io.Writer, machineConfig machine.Config) error {
	out, err := yaml.Marshal(machineConfig)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func run(ctx context.Context, machineConfig machine.Config, opts qemu.Options, cfg IO) error {
	opts.Stderr = cfg.Stderr

	engine, err := qemu.New(machineConfig, opts)
	if err != nil {
		return fmt.Errorf("new engine: %w", err)
	}

	slog.Debug("QEMU command", slog.String("command", engine.String()))

	sess := session.New(engine, cfg.terminal(), cfg.Stdin, cfg.Stdout)

	err = sess.Run(ctx)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help or version is requested. So exit
	// without error in this case.
	if errors.Is(err, ErrHelp) {
		return exitCodeOK
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitCodeError
}

func handleRunError(err error) int {
	slog.Error(err.Error())

	return exitCodeError
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := loadFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	machineConfig, err := flags.Config()
	if err != nil {
		return handleParseArgsError(err)
	}

	slog.Debug("Machine config", slog.Any("config", machineConfig))

	if flags.printConfig {
		err := printConfig(cfg.Stdout, machineConfig)
		if err != nil {
			slog.Error(err.Error())
			return exitCodeError
		}

		return exitCodeOK
	}

	err = run(ctx, machineConfig, flags.QemuOptions(), cfg)
	if err != nil {
		return handleRunError(err)
	}

	return exitCodeOK
}
