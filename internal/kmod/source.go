// Package kmod reads and edits the runtime parameters of loaded kernel
// modules. It aggregates three independent sources: the live sysfs values,
// modinfo parameter descriptions, and persisted modprobe.d overrides.
package kmod

import (
	"io"

	"github.com/charmbracelet/log"
)

// Default locations on a stock Linux system.
const (
	DefaultSysModuleDir = "/sys/module"
	DefaultModprobeDir  = "/etc/modprobe.d"
	DefaultModinfoBin   = "modinfo"
)

// Source bundles the locations the readers pull from. All reads are
// synchronous and uncached; callers rebuild models instead of mutating them.
type Source struct {
	SysModuleDir string
	ModprobeDir  string
	ModinfoBin   string

	logger *log.Logger
}

// NewSource creates a Source. Empty fields fall back to the system defaults;
// a nil logger discards everything.
func NewSource(sysModuleDir, modprobeDir, modinfoBin string, logger *log.Logger) *Source {
	if sysModuleDir == "" {
		sysModuleDir = DefaultSysModuleDir
	}
	if modprobeDir == "" {
		modprobeDir = DefaultModprobeDir
	}
	if modinfoBin == "" {
		modinfoBin = DefaultModinfoBin
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Source{
		SysModuleDir: sysModuleDir,
		ModprobeDir:  modprobeDir,
		ModinfoBin:   modinfoBin,
		logger:       logger,
	}
}
