// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Options are the user provided values a [Config] is built from.
//
// Empty strings are unset values.
type Options struct {
	// Directory of bundled assets. Used for firmware defaults.
	AssetsDir string

	Memory    string
	VGAMemory string

	BIOS    string
	VGABIOS string

	HDA   string
	HDB   string
	FDA   string
	FDB   string
	CDROM string

	Kernel string
	Initrd string
	Append string

	Boot string

	ACPI      bool
	FastBoot  bool
	Autostart bool

	DisableKeyboard bool
	DisableMouse    bool
	DisableSpeaker  bool

	LogLevel string

	NetDev string
	VirtFS string
}

// Build builds a complete [Config] from the given [Options].
//
// It fails only if a size value is malformed. Unknown network and virtfs
// modes are no error, the descriptor is just not set.
func Build(opts Options) (Config, error) {
	memorySize, err := ParseMemorySize(opts.Memory)
	if err != nil {
		return Config{}, fmt.Errorf("memory: %w", err)
	}

	vgaMemorySize, err := ParseMemorySize(opts.VGAMemory)
	if err != nil {
		return Config{}, fmt.Errorf("vga memory: %w", err)
	}

	bios, err := firmwareReference(opts.BIOS, opts.AssetsDir, BIOSFileName)
	if err != nil {
		return Config{}, fmt.Errorf("bios: %w", err)
	}

	vgaBIOS, err := firmwareReference(opts.VGABIOS, opts.AssetsDir, VGABIOSFileName)
	if err != nil {
		return Config{}, fmt.Errorf("vga bios: %w", err)
	}

	cfg := Config{
		AssetsDir:       opts.AssetsDir,
		MemorySize:      memorySize,
		VGAMemorySize:   vgaMemorySize,
		BIOS:            bios,
		VGABIOS:         vgaBIOS,
		Cmdline:         opts.Append,
		ACPI:            opts.ACPI,
		FastBoot:        opts.FastBoot,
		Autostart:       opts.Autostart,
		DisableKeyboard: opts.DisableKeyboard,
		DisableMouse:    opts.DisableMouse,
		DisableSpeaker:  opts.DisableSpeaker,
		LogLevel:        parseLogLevel(opts.LogLevel),
	}

	images := []struct {
		name  string
		path  string
		field **ImageReference
	}{
		{"hda", opts.HDA, &cfg.HDA},
		{"hdb", opts.HDB, &cfg.HDB},
		{"fda", opts.FDA, &cfg.FDA},
		{"fdb", opts.FDB, &cfg.FDB},
		{"cdrom", opts.CDROM, &cfg.CDROM},
		{"kernel", opts.Kernel, &cfg.Kernel},
		{"initrd", opts.Initrd, &cfg.Initrd},
	}

	for _, image := range images {
		ref, err := NewImageReference(image.path)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", image.name, err)
		}

		*image.field = ref
	}

	// The default device is the engine default anyway, so it is not set
	// explicitly.
	if opts.Boot != "" && opts.Boot != DefaultBootOrder {
		cfg.BootOrder = MapBootOrder(opts.Boot)
	}

	if opts.NetDev != "" {
		cfg.Network = ParseNetworkDescriptor(opts.NetDev)
	}

	if opts.VirtFS != "" {
		cfg.VirtFS = ParseVirtFSDescriptor(opts.VirtFS)
	}

	return cfg, nil
}

func firmwareReference(path, assetsDir, defaultName string) (ImageReference, error) {
	if path == "" {
		return ImageReference{URL: filepath.Join(assetsDir, defaultName)}, nil
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return ImageReference{}, err
	}

	return ImageReference{URL: resolved}, nil
}

// parseLogLevel parses the leading integer of the given string. It returns
// nil if there is none.
func parseLogLevel(s string) *int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return nil
	}

	level, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}

	return &level
}
