package kmod

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinels shown in place of data a source could not provide.
const (
	ValueUnreadable = "<Unreadable>"
	NoDescription   = "No description available."
)

// writeBits is the owner/group/other write permission mask.
const writeBits = 0o222

// ParameterRecord is one runtime parameter of one module, merged from all
// three sources. Records are never mutated in place; any change to the
// underlying state is reflected by rebuilding the whole ModuleModel.
type ParameterRecord struct {
	Name        string
	Value       string // live value, or ValueUnreadable
	Writable    bool   // any write bit set on the sysfs file
	Path        string // sysfs file used to re-read or write the value
	Description string
	Persisted   []PersistedOverride
}

// ReadParameters reads the live parameters of a module from sysfs, sorted by
// name. A module without a parameters directory yields an empty list. A
// failed value read is isolated to its record: the value becomes
// ValueUnreadable while writability is still derived from the permission
// bits, since the two checks are independent.
func (s *Source) ReadParameters(module string) []ParameterRecord {
	paramDir := filepath.Join(s.SysModuleDir, module, "parameters")
	entries, err := os.ReadDir(paramDir)
	if err != nil {
		s.logger.Debug("no parameters directory", "module", module, "err", err)
		return nil
	}

	params := make([]ParameterRecord, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(paramDir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		// Writable to owner, group, or other. Deliberately broader than
		// "writable by this process": an elevated run may satisfy it.
		writable := info.Mode().Perm()&writeBits != 0

		value := ValueUnreadable
		if data, err := os.ReadFile(path); err == nil {
			value = strings.TrimSpace(string(data))
		} else {
			s.logger.Debug("parameter value unreadable", "module", module, "param", e.Name(), "err", err)
		}

		params = append(params, ParameterRecord{
			Name:     e.Name(),
			Value:    value,
			Writable: writable,
			Path:     path,
		})
	}

	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}

// WriteParameter writes a new value to a parameter's sysfs file. The kernel
// may reject or normalize the value; callers must re-read afterwards rather
// than trust the input. Failures carry the underlying cause and are never
// retried.
func (s *Source) WriteParameter(path, value string) error {
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
