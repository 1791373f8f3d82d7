// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"log/slog"
	"slices"
	"strconv"

	"github.com/aibor/v86system/internal/machine"
	"github.com/c2h5oh/datasize"
	"github.com/samber/lo"
)

const (
	networkID = "net0"
	fsdevID   = "fs0"

	// Mount tag of the virtual filesystem in the guest.
	VirtFSMountTag = "host9p"

	defaultNetworkModel = "ne2k_pci"
)

// Network device types known by name mapped to QEMU device models. Other
// types are used as QEMU device model as they are.
var networkModels = map[string]string{
	"ne2k":   defaultNetworkModel,
	"virtio": "virtio-net-pci",
}

// Options of user mode network backends, passed through as they are.
var userNetworkOptions = []string{
	"bootfile",
	"dhcpstart",
	"dns",
	"domainname",
	"guestfwd",
	"host",
	"hostfwd",
	"hostname",
	"ipv6",
	"net",
	"restrict",
	"smb",
	"tftp",
}

// Debug log items enabled by log level. Each level includes the items of the
// lower ones.
var logLevelItems = [][]string{
	nil,
	{"guest_errors"},
	{"unimp"},
	{"cpu_reset", "int"},
}

// MachineArgs returns the QEMU arguments for the given [machine.Config].
func MachineArgs(cfg machine.Config) []Argument {
	args := []Argument{
		UniqueArg("machine", machineOptions(cfg)...),
		UniqueArg("bios", cfg.BIOS.URL),
		UniqueArg("vga", "none"),
		RepeatableArg("device", vgaOptions(cfg)...),
	}

	if cfg.AssetsDir != "" {
		args = append(args, UniqueArg("L", cfg.AssetsDir))
	}

	if cfg.MemorySize > 0 {
		args = append(args, UniqueArg("m", sizeValue(cfg.MemorySize)))
	}

	images := []struct {
		name string
		ref  *machine.ImageReference
	}{
		{"hda", cfg.HDA},
		{"hdb", cfg.HDB},
		{"fda", cfg.FDA},
		{"fdb", cfg.FDB},
		{"cdrom", cfg.CDROM},
		{"kernel", cfg.Kernel},
		{"initrd", cfg.Initrd},
	}

	for _, image := range images {
		if image.ref != nil {
			args = append(args, UniqueArg(image.name, image.ref.URL))
		}
	}

	if cfg.Cmdline != "" {
		args = append(args, UniqueArg("append", cfg.Cmdline))
	}

	if bootOpts := bootOptions(cfg); len(bootOpts) > 0 {
		args = append(args, UniqueArg("boot", bootOpts...))
	}

	if !cfg.Autostart {
		args = append(args, UniqueArg("S"))
	}

	if cfg.LogLevel != nil {
		if items := logItems(*cfg.LogLevel); len(items) > 0 {
			args = append(args, UniqueArg("d", items...))
		}
	}

	if cfg.Network != nil {
		args = append(args, networkArgs(cfg.Network)...)
	}

	if cfg.VirtFS != nil {
		args = append(args, virtFSArgs(cfg.VirtFS)...)
	}

	return args
}

func machineOptions(cfg machine.Config) []string {
	opts := []string{"pc", "acpi=" + onOff(cfg.ACPI)}

	// The PS/2 controller serves both, so it can only be removed if both
	// are disabled.
	if cfg.DisableKeyboard && cfg.DisableMouse {
		opts = append(opts, "i8042=off")
	} else if cfg.DisableKeyboard || cfg.DisableMouse {
		slog.Debug("Disabling only one of keyboard and mouse is not supported")
	}

	// The PC speaker stays silent without audio backend anyway, so
	// DisableSpeaker needs nothing.

	return opts
}

func vgaOptions(cfg machine.Config) []string {
	opts := []string{"VGA"}

	if cfg.VGAMemorySize > 0 {
		mb := max(uint64(cfg.VGAMemorySize/datasize.MB), 1)
		opts = append(opts, "vgamem_mb="+strconv.FormatUint(mb, 10))
	}

	if cfg.VGABIOS.URL != "" {
		opts = append(opts, "romfile="+cfg.VGABIOS.URL)
	}

	return opts
}

func bootOptions(cfg machine.Config) []string {
	var opts []string

	if letter := cfg.BootOrder.Letter(); letter != "" {
		opts = append(opts, "order="+letter)
	}

	if cfg.FastBoot {
		opts = append(opts, "menu=off", "splash-time=0")
	}

	return opts
}

func logItems(level int) []string {
	var items []string

	for l := 1; l <= level && l < len(logLevelItems); l++ {
		items = append(items, logLevelItems[l]...)
	}

	return items
}

func networkArgs(desc machine.NetworkDescriptor) []Argument {
	netdev := []string{"user", "id=" + networkID}

	keys := lo.Keys(map[string]string(desc))
	slices.Sort(keys)

	for _, key := range keys {
		switch {
		case key == "type":
		case slices.Contains(userNetworkOptions, key):
			netdev = append(netdev, key+"="+desc[key])
		default:
			slog.Debug("Ignoring unsupported network option",
				slog.String("option", key))
		}
	}

	model := defaultNetworkModel
	if t := desc["type"]; t != "" {
		model = lo.ValueOr(networkModels, t, t)
	}

	return []Argument{
		RepeatableArg("netdev", netdev...),
		RepeatableArg("device", model, "netdev="+networkID),
	}
}

func virtFSArgs(desc machine.VirtFSDescriptor) []Argument {
	return []Argument{
		RepeatableArg("fsdev",
			"proxy",
			"id="+fsdevID,
			"socket="+desc[machine.VirtFSProxyURLKey],
		),
		RepeatableArg("device",
			"virtio-9p-pci",
			"fsdev="+fsdevID,
			"mount_tag="+VirtFSMountTag,
		),
	}
}

// sizeValue formats the size with the largest unit QEMU accepts that
// represents it exactly.
func sizeValue(size datasize.ByteSize) string {
	units := []struct {
		size   datasize.ByteSize
		suffix string
	}{
		{datasize.TB, "T"},
		{datasize.GB, "G"},
		{datasize.MB, "M"},
		{datasize.KB, "K"},
	}

	for _, unit := range units {
		if size%unit.size == 0 {
			return strconv.FormatUint(uint64(size/unit.size), 10) + unit.suffix
		}
	}

	return strconv.FormatUint(uint64(size), 10) + "B"
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
