// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/aibor/v86system/internal/machine"
	"github.com/aibor/v86system/internal/qemu"
	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func absPath(t *testing.T, path string) string {
	t.Helper()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	return abs
}

func TestFlags_ParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectedErr error
	}{
		{
			name:        "help",
			args:        []string{"-h"},
			expectedErr: ErrHelp,
		},
		{
			name:        "help long",
			args:        []string{"-help"},
			expectedErr: ErrHelp,
		},
		{
			name:        "version",
			args:        []string{"-v"},
			expectedErr: ErrHelp,
		},
		{
			name:        "unknown flag",
			args:        []string{"-smp", "2"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "positional argument",
			args:        []string{"-hda", "disk.img", "disk2.img"},
			expectedErr: ErrUnexpectedArgument,
		},
		{
			name:        "missing value",
			args:        []string{"-hda"},
			expectedErr: &ParseArgsError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, io.Discard, io.Discard)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestFlags_ParseArgs_Usage(t *testing.T) {
	var output, errOutput bytes.Buffer

	_, err := parseArgs([]string{"--help"}, &output, &errOutput)
	require.ErrorIs(t, err, ErrHelp)

	assert.Empty(t, errOutput.String())

	assert.Contains(t, output.String(), "Usage of 'v86-system-i386'")
	assert.Contains(t, output.String(), "--vga-mem")
	assert.Contains(t, output.String(), "-m, --mem")
	assert.NotContains(t, output.String(), "--m ")
	assert.Contains(t, output.String(), "proxy,SOCKET (QEMU before 8.1 only)")
}

func TestFlags_ParseArgs_Version(t *testing.T) {
	var output, errOutput bytes.Buffer

	_, err := parseArgs([]string{"-version"}, &output, &errOutput)
	require.ErrorIs(t, err, ErrHelp)

	assert.Regexp(t, `^v86-system-i386 \S+\n$`, output.String())
	assert.Empty(t, errOutput.String())
}

func TestFlags_ParseArgs_FailPrintsError(t *testing.T) {
	var output bytes.Buffer

	_, err := parseArgs([]string{"-hda", "a.img", "b.img"}, io.Discard, &output)
	require.ErrorIs(t, err, &ParseArgsError{})

	assert.Contains(t, output.String(), "b.img: unexpected argument\n")
	assert.Contains(t, output.String(), "Usage of")
}

func TestFlags_ParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(opts *machine.Options)
	}{
		{
			name: "defaults",
		},
		{
			name: "images",
			args: []string{
				"-hda", "disk.img",
				"-hdb=/images/disk2.img",
				"-fda", "floppy.img",
				"--fdb", "floppy2.img",
				"-cdrom", "https://example.com/boot.iso",
				"-kernel", "bzImage",
				"-initrd", "initrd.img",
				"-bios", "bios.bin",
				"-vga-bios", "/fw/vgabios.bin",
			},
			expected: func(opts *machine.Options) {
				opts.HDA = absPath(t, "disk.img")
				opts.HDB = "/images/disk2.img"
				opts.FDA = absPath(t, "floppy.img")
				opts.FDB = absPath(t, "floppy2.img")
				opts.CDROM = "https://example.com/boot.iso"
				opts.Kernel = absPath(t, "bzImage")
				opts.Initrd = absPath(t, "initrd.img")
				opts.BIOS = absPath(t, "bios.bin")
				opts.VGABIOS = "/fw/vgabios.bin"
			},
		},
		{
			name: "memory shorthand",
			args: []string{"-m", "2G"},
			expected: func(opts *machine.Options) {
				opts.Memory = "2G"
			},
		},
		{
			name: "memory alias",
			args: []string{"--m", "1G", "-vga-mem", "16M"},
			expected: func(opts *machine.Options) {
				opts.Memory = "1G"
				opts.VGAMemory = "16M"
			},
		},
		{
			name: "later wins",
			args: []string{"-mem", "256M", "-m", "1G", "-boot", "a", "-boot", "d"},
			expected: func(opts *machine.Options) {
				opts.Memory = "1G"
				opts.Boot = "d"
			},
		},
		{
			name: "switches",
			args: []string{
				"-acpi",
				"-fastboot",
				"-autostart=false",
				"-disable-keyboard",
				"-disable-mouse",
				"-disable-speaker",
			},
			expected: func(opts *machine.Options) {
				opts.ACPI = true
				opts.FastBoot = true
				opts.Autostart = false
				opts.DisableKeyboard = true
				opts.DisableMouse = true
				opts.DisableSpeaker = true
			},
		},
		{
			name: "strings",
			args: []string{
				"-append", "console=ttyS0 root=/dev/sda1",
				"-netdev", "user,type=virtio",
				"-virtfs", "proxy,/run/9p.sock",
				"-log-level", "2",
				"-assets", "/opt/v86/assets",
			},
			expected: func(opts *machine.Options) {
				opts.Append = "console=ttyS0 root=/dev/sda1"
				opts.NetDev = "user,type=virtio"
				opts.VirtFS = "proxy,/run/9p.sock"
				opts.LogLevel = "2"
				opts.AssetsDir = "/opt/v86/assets"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaultAssetsDir, err := machine.DefaultAssetsDir()
			require.NoError(t, err)

			expected := machine.Options{
				AssetsDir: defaultAssetsDir,
				Memory:    "512M",
				VGAMemory: "8M",
				Boot:      "c",
				Autostart: true,
				LogLevel:  "0",
			}
			if tt.expected != nil {
				tt.expected(&expected)
			}

			flags, err := parseArgs(tt.args, io.Discard, io.Discard)
			require.NoError(t, err)

			assert.Equal(t, expected, flags.opts)
		})
	}
}

func TestFlags_Launcher(t *testing.T) {
	flags, err := parseArgs([]string{
		"-qemu-bin", "/usr/local/bin/qemu-system-i386",
		"-nokvm",
		"-print-config",
		"-debug",
	}, io.Discard, io.Discard)
	require.NoError(t, err)

	assert.True(t, flags.printConfig)
	assert.True(t, flags.debug)

	expected := qemu.Options{
		Executable: "/usr/local/bin/qemu-system-i386",
		NoKVM:      true,
	}
	assert.Equal(t, expected, flags.QemuOptions())
}

func TestFlags_Config(t *testing.T) {
	flags, err := parseArgs([]string{
		"--hda", "disk.img",
		"--m", "1G",
		"--boot", "d",
		"-assets", "/opt/v86/assets",
	}, io.Discard, io.Discard)
	require.NoError(t, err)

	cfg, err := flags.Config()
	require.NoError(t, err)

	level := 0
	expected := machine.Config{
		AssetsDir:     "/opt/v86/assets",
		MemorySize:    1073741824,
		VGAMemorySize: 8 * datasize.MB,
		BIOS:          machine.ImageReference{URL: "/opt/v86/assets/seabios.bin"},
		VGABIOS:       machine.ImageReference{URL: "/opt/v86/assets/vgabios.bin"},
		HDA:           &machine.ImageReference{URL: absPath(t, "disk.img")},
		BootOrder:     machine.BootCDROM,
		Autostart:     true,
		LogLevel:      &level,
	}
	assert.Equal(t, expected, cfg)
}

func TestFlags_Config_EmptyImages(t *testing.T) {
	flags, err := parseArgs([]string{
		"--hda", "disk.img",
		"--hda", "",
		"--bios", "",
		"-cdrom=",
		"-assets", "/opt/v86/assets",
	}, io.Discard, io.Discard)
	require.NoError(t, err)

	cfg, err := flags.Config()
	require.NoError(t, err)

	assert.Nil(t, cfg.HDA, "hda")
	assert.Nil(t, cfg.CDROM, "cdrom")
	assert.Equal(t, "/opt/v86/assets/seabios.bin", cfg.BIOS.URL)
	assert.Equal(t, "/opt/v86/assets/vgabios.bin", cfg.VGABIOS.URL)
}

func TestFlags_Config_InvalidSize(t *testing.T) {
	var output bytes.Buffer

	flags, err := parseArgs([]string{"-m", "lots"}, io.Discard, &output)
	require.NoError(t, err)

	_, err = flags.Config()
	require.ErrorIs(t, err, machine.ErrInvalidSizeFormat)
	require.ErrorIs(t, err, &ParseArgsError{})

	assert.Contains(t, output.String(),
		"invalid configuration: memory: invalid memory size format: lots")
}
