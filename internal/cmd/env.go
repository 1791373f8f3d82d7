// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// ArgsEnvVar is the environment variable arguments are read from.
	ArgsEnvVar = "V86_SYSTEM_ARGS"

	localConfigFile = ".v86-system-args"
	dotEnvFile      = ".env"
)

// EnvArgs returns arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(ArgsEnvVar))
}

// LoadDotEnv loads environment variables from the given file, if present.
// Variables already set in the environment are not overridden.
func LoadDotEnv(file string) error {
	err := godotenv.Load(file)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}

	return nil
}

// LocalConfigArgs returns arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the arguments of all sources in the order local config
// file, environment, given args. So given args take precedence.
func MergedArgs(args []string, fsys fs.FS, file string) ([]string, error) {
	fileArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config: %w", err)
	}

	return slices.Concat(fileArgs, EnvArgs(), args), nil
}
