// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/v86system/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	diskPath, err := filepath.Abs("disk.img")
	require.NoError(t, err)

	tests := []struct {
		name             string
		args             []string
		env              string
		expectedExitCode int
		expectedStdout   []string
		expectedStderr   []string
	}{
		{
			name:           "help",
			args:           []string{"-h"},
			expectedStdout: []string{"Usage of 'v86-system-i386'", "--hda"},
		},
		{
			name:           "version",
			args:           []string{"--version"},
			expectedStdout: []string{"v86-system-i386 "},
		},
		{
			name: "print config",
			args: []string{
				"-hda", "disk.img",
				"--m", "1G",
				"-boot", "d",
				"-assets", "/opt/v86/assets",
				"-netdev", "user,type=virtio",
				"-print-config",
			},
			expectedStdout: []string{
				"assets_dir: /opt/v86/assets\n",
				"autostart: true\n",
				"bios:\n  url: /opt/v86/assets/seabios.bin\n",
				"boot_order: 129\n",
				"hda:\n  url: " + diskPath + "\n",
				"memory_size: 1GB\n",
				"net_device:\n  type: virtio\n",
			},
		},
		{
			name: "env args",
			args: []string{"-print-config", "-assets", "/a"},
			env:  "-acpi -cmdline-ignored",
			expectedStderr: []string{
				"unknown flag: --cmdline-ignored",
			},
			expectedExitCode: 1,
		},
		{
			name:             "invalid memory size",
			args:             []string{"-m", "12Q", "-assets", "/a"},
			expectedExitCode: 1,
			expectedStderr: []string{
				"invalid configuration: memory: invalid memory size format: 12Q",
			},
		},
		{
			name:             "unexpected argument",
			args:             []string{"disk.img"},
			expectedExitCode: 1,
			expectedStderr:   []string{"disk.img: unexpected argument"},
		},
		{
			name: "engine start failure",
			args: []string{
				"-qemu-bin", "/nonexistent/qemu-system-i386",
				"-nokvm",
				"-assets", "/a",
			},
			expectedExitCode: 1,
			expectedStderr:   []string{"start engine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(cmd.ArgsEnvVar, tt.env)

			var stdout, stderr bytes.Buffer

			exitCode := cmd.Run(t.Context(), tt.args, cmd.IO{
				Stdin:  strings.NewReader(""),
				Stdout: &stdout,
				Stderr: &stderr,
			})
			assert.Equal(t, tt.expectedExitCode, exitCode, "exit code")

			for _, expected := range tt.expectedStdout {
				assert.Contains(t, stdout.String(), expected, "stdout")
			}

			for _, expected := range tt.expectedStderr {
				assert.Contains(t, stderr.String(), expected, "stderr")
			}
		})
	}
}

func TestRun_PrintConfigEnvArgs(t *testing.T) {
	t.Setenv(cmd.ArgsEnvVar, "-acpi -m 256M")

	var stdout bytes.Buffer

	exitCode := cmd.Run(t.Context(), []string{"-print-config", "-m", "2G", "-assets", "/a"}, cmd.IO{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	})
	require.Equal(t, 0, exitCode)

	assert.Contains(t, stdout.String(), "acpi: true\n")
	assert.Contains(t, stdout.String(), "memory_size: 2GB\n")
}
