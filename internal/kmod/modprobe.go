package kmod

import (
	"os"
	"path/filepath"
	"strings"
)

// PersistedOverride is one "options <module> name=value" directive found in a
// modprobe.d config file. It affects future module loads, not the live value.
type PersistedOverride struct {
	Value string
	File  string // config file base name
	Line  string // raw directive line, trimmed
}

// ReadPersistedOverrides scans the modprobe.d directory for *.conf files and
// collects every options directive addressing the module, keyed by parameter
// name. Multiple directives for one parameter are all kept, in file order
// then line order. Files that cannot be read are skipped whole; this source
// only annotates the display, so losing it is non-critical.
func (s *Source) ReadPersistedOverrides(module string) map[string][]PersistedOverride {
	overrides := make(map[string][]PersistedOverride)

	files, err := filepath.Glob(filepath.Join(s.ModprobeDir, "*.conf"))
	if err != nil {
		return overrides
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			s.logger.Debug("config file unreadable", "file", file, "err", err)
			continue
		}
		for _, raw := range strings.Split(string(data), "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 3 || parts[0] != "options" || parts[1] != module {
				continue
			}
			for _, part := range parts[2:] {
				name, value, ok := strings.Cut(part, "=")
				if !ok {
					continue
				}
				overrides[name] = append(overrides[name], PersistedOverride{
					Value: value,
					File:  filepath.Base(file),
					Line:  line,
				})
			}
		}
	}
	return overrides
}
