package kmod

import (
	"os"
	"sort"
)

// ListModules returns the names of all currently loaded modules, sorted
// lexicographically. A missing sysfs root yields an empty list, not an
// error; unreadable entries are skipped.
func (s *Source) ListModules() []string {
	entries, err := os.ReadDir(s.SysModuleDir)
	if err != nil {
		s.logger.Debug("module registry unavailable", "dir", s.SysModuleDir, "err", err)
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
