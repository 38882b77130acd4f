package kmod

import (
	"os/exec"
	"strings"
)

// ReadDescriptions asks modinfo for the parameter descriptions of a module.
// modinfo -p prints one "name: description" pair per line. This source is
// advisory: a missing tool, non-zero exit, or unparsable output all yield an
// empty map and never block model construction.
func (s *Source) ReadDescriptions(module string) map[string]string {
	out, err := exec.Command(s.ModinfoBin, "-p", module).Output()
	if err != nil {
		s.logger.Debug("modinfo failed", "module", module, "err", err)
		return map[string]string{}
	}

	descs := make(map[string]string)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, desc, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		descs[strings.TrimSpace(name)] = strings.TrimSpace(desc)
	}
	return descs
}
