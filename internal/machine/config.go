// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package machine

import (
	"github.com/c2h5oh/datasize"
)

// Config is the complete machine configuration for the engine.
//
// Zero values and nil pointers are absent fields, the engine uses its own
// defaults for them. Field names in serialized form match the engine's
// option names.
type Config struct {
	// Directory of the bundled engine runtime assets.
	AssetsDir string `json:"assets_dir"`

	MemorySize    datasize.ByteSize `json:"memory_size,omitempty"`
	VGAMemorySize datasize.ByteSize `json:"vga_memory_size,omitempty"`

	// Firmware images. Always set, defaults point into AssetsDir.
	BIOS    ImageReference `json:"bios"`
	VGABIOS ImageReference `json:"vga_bios"`

	HDA   *ImageReference `json:"hda,omitempty"`
	HDB   *ImageReference `json:"hdb,omitempty"`
	FDA   *ImageReference `json:"fda,omitempty"`
	FDB   *ImageReference `json:"fdb,omitempty"`
	CDROM *ImageReference `json:"cdrom,omitempty"`

	// Direct kernel boot.
	Kernel  *ImageReference `json:"bzimage,omitempty"`
	Initrd  *ImageReference `json:"initrd,omitempty"`
	Cmdline string          `json:"cmdline,omitempty"`

	BootOrder BootOrderCode `json:"boot_order,omitempty"`

	ACPI      bool `json:"acpi,omitempty"`
	FastBoot  bool `json:"fastboot,omitempty"`
	Autostart bool `json:"autostart"`

	DisableKeyboard bool `json:"disable_keyboard,omitempty"`
	DisableMouse    bool `json:"disable_mouse,omitempty"`
	DisableSpeaker  bool `json:"disable_speaker,omitempty"`

	LogLevel *int `json:"log_level,omitempty"`

	Network NetworkDescriptor `json:"net_device,omitempty"`
	VirtFS  VirtFSDescriptor  `json:"filesystem,omitempty"`
}
