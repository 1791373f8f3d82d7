// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/v86system/internal/machine"
	"github.com/aibor/v86system/internal/qemu"
	"github.com/spf13/pflag"
)

const (
	name = "v86-system-i386"

	memDefault       = "512M"
	vgaMemDefault    = "8M"
	logLevelDefault  = "0"
	autostartDefault = true

	usageMessage = `Usage of '` + name + `':
    ` + name + ` [flags...]

Runs an i386 PC system with the host terminal attached to its serial console.
Press Ctrl-A x to exit. Ctrl-A followed by any other key sends both to the
guest.

Flags may be given with single or double dash (-hda and --hda are the same).

Examples:
    ` + name + ` -hda disk.img
    ` + name + ` -m 1G -hda disk.img -cdrom boot.iso
    ` + name + ` -kernel vmlinuz -initrd initrd.img -append "console=ttyS0"

All flags can also be provided via environment variable ` + ArgsEnvVar + `,
which may be set in a .env file in the working directory, and via file
./` + localConfigFile + `, with one argument per line.
`
)

// Set on build.
var version = "dev"

type flags struct {
	opts machine.Options

	qemuBin     string
	noKVM       bool
	printConfig bool
	debug       bool
	version     bool
	help        bool

	// Receives help and version output. Errors go to the flag set output.
	stdout  io.Writer
	flagSet *pflag.FlagSet
}

func newFlags(stdout, stderr io.Writer) *flags {
	flags := &flags{
		opts: machine.Options{
			Memory:    memDefault,
			VGAMemory: vgaMemDefault,
			Boot:      machine.DefaultBootOrder,
			Autostart: autostartDefault,
			LogLevel:  logLevelDefault,
		},
		qemuBin: qemu.DefaultExecutable,
		stdout:  stdout,
	}

	flags.initFlagSet(stderr)

	return flags
}

//nolint:funlen
func (f *flags) initFlagSet(output io.Writer) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = f.usage
	fs.SortFlags = false

	fs.BoolVarP(&f.help, "help", "h", f.help, "show help")
	fs.BoolVarP(&f.version, "version", "v", f.version, "show version and exit")

	fs.StringVarP(&f.opts.Memory, "mem", "m", f.opts.Memory,
		"memory size, optional unit K, M, G or T (default unit M)")

	// Normalized "-m" stays a shorthand, but "--m" needs to work as well.
	fs.StringVar(&f.opts.Memory, "m", f.opts.Memory, "memory size")
	_ = fs.MarkHidden("m")

	fs.StringVar(&f.opts.VGAMemory, "vga-mem", f.opts.VGAMemory,
		"VGA memory size, optional unit K, M, G or T (default unit M)")

	images := []struct {
		name  string
		value *string
		usage string
	}{
		{"hda", &f.opts.HDA, "primary hard disk image"},
		{"hdb", &f.opts.HDB, "secondary hard disk image"},
		{"fda", &f.opts.FDA, "floppy disk A image"},
		{"fdb", &f.opts.FDB, "floppy disk B image"},
		{"cdrom", &f.opts.CDROM, "CD-ROM image"},
	}

	for _, image := range images {
		fs.Var((*imagePath)(image.value), image.name, image.usage)
	}

	fs.StringVar(&f.opts.Boot, "boot", f.opts.Boot,
		"boot device: a, b (floppy), c (hard disk), d (CD-ROM), n (network)")
	fs.Var((*imagePath)(&f.opts.Kernel), "kernel", "Linux kernel image (bzImage)")
	fs.Var((*imagePath)(&f.opts.Initrd), "initrd", "initial ramdisk image")
	fs.StringVar(&f.opts.Append, "append", f.opts.Append, "kernel command line")

	fs.Var((*imagePath)(&f.opts.BIOS), "bios",
		"BIOS image (default "+machine.BIOSFileName+" in assets dir)")
	fs.Var((*imagePath)(&f.opts.VGABIOS), "vga-bios",
		"VGA BIOS image (default "+machine.VGABIOSFileName+" in assets dir)")
	fs.BoolVar(&f.opts.ACPI, "acpi", f.opts.ACPI, "enable ACPI")
	fs.BoolVar(&f.opts.FastBoot, "fastboot", f.opts.FastBoot,
		"skip the boot menu")

	fs.StringVar(&f.opts.NetDev, "netdev", f.opts.NetDev,
		"network device: user[,type=ne2k|virtio][,key=value...]")
	fs.StringVar(&f.opts.VirtFS, "virtfs", f.opts.VirtFS,
		"filesystem passthrough: proxy,SOCKET (QEMU before 8.1 only)")

	fs.BoolVar(&f.opts.Autostart, "autostart", f.opts.Autostart,
		"start emulation automatically")
	fs.BoolVar(&f.opts.DisableKeyboard, "disable-keyboard",
		f.opts.DisableKeyboard, "disable keyboard input")
	fs.BoolVar(&f.opts.DisableMouse, "disable-mouse",
		f.opts.DisableMouse, "disable mouse input")
	fs.BoolVar(&f.opts.DisableSpeaker, "disable-speaker",
		f.opts.DisableSpeaker, "disable speaker output")
	fs.StringVar(&f.opts.LogLevel, "log-level", f.opts.LogLevel,
		"engine log level (0-3)")

	fs.StringVar(&f.opts.AssetsDir, "assets", f.opts.AssetsDir,
		"directory of bundled assets (default assets dir next to executable)")
	fs.StringVar(&f.qemuBin, "qemu-bin", f.qemuBin, "QEMU binary to use")
	fs.BoolVar(&f.noKVM, "nokvm", f.noKVM, "disable hardware support")
	fs.BoolVar(&f.printConfig, "print-config", f.printConfig,
		"print machine configuration as YAML and exit")
	fs.BoolVar(&f.debug, "debug", f.debug, "enable debug output")

	f.flagSet = fs
}

// ParseArgs parses the given args. They are normalized before.
func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(NormalizeArgs(args))
	if err != nil {
		return f.fail("flag parse", err)
	}

	// With help or version flag, just print and exit. Using [ErrHelp] the
	// main binary is supposed to return with a non error exit code.
	if f.help {
		f.flagSet.SetOutput(f.stdout)
		f.flagSet.Usage()
		return &ParseArgsError{msg: "help requested", err: ErrHelp}
	}

	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if f.flagSet.NArg() > 0 {
		return f.fail(f.flagSet.Arg(0), ErrUnexpectedArgument)
	}

	if f.opts.AssetsDir == "" {
		assetsDir, err := machine.DefaultAssetsDir()
		if err != nil {
			return &ParseArgsError{msg: "assets dir", err: err}
		}

		f.opts.AssetsDir = assetsDir
	}

	return nil
}

// Config builds the [machine.Config] from the parsed flags.
func (f *flags) Config() (machine.Config, error) {
	cfg, err := machine.Build(f.opts)
	if err != nil {
		return machine.Config{}, f.fail("invalid configuration", err)
	}

	return cfg, nil
}

// QemuOptions returns the engine options from the parsed flags.
func (f *flags) QemuOptions() qemu.Options {
	return qemu.Options{
		Executable: f.qemuBin,
		NoKVM:      f.noKVM,
	}
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	v := version
	if v == "dev" && buildInfo.Main.Version != "" {
		v = buildInfo.Main.Version
	}

	fmt.Fprintf(f.stdout, "%s %s\n", name, v)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}

func parseArgs(args []string, stdout, stderr io.Writer) (*flags, error) {
	flags := newFlags(stdout, stderr)

	err := flags.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}
