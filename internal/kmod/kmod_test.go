package kmod

import (
	"os"
	"path/filepath"
	"testing"
)

// newTestSource builds a Source over throwaway directories. Pass "" to leave
// a location pointing at a path that does not exist.
func newTestSource(t *testing.T, sysDir, modprobeDir, modinfoBin string) *Source {
	t.Helper()
	if sysDir == "" {
		sysDir = filepath.Join(t.TempDir(), "no-sys-module")
	}
	if modprobeDir == "" {
		modprobeDir = filepath.Join(t.TempDir(), "no-modprobe.d")
	}
	if modinfoBin == "" {
		modinfoBin = filepath.Join(t.TempDir(), "no-modinfo")
	}
	return NewSource(sysDir, modprobeDir, modinfoBin, nil)
}

// writeSysfsParam creates <sysDir>/<module>/parameters/<name> with the given
// content and mode.
func writeSysfsParam(t *testing.T, sysDir, module, name, value string, mode os.FileMode) string {
	t.Helper()
	dir := filepath.Join(sysDir, module, "parameters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeModinfo writes an executable shell script standing in for modinfo.
func fakeModinfo(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modinfo")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeConf(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListModulesSorted(t *testing.T) {
	sysDir := t.TempDir()
	for _, name := range []string{"ext4", "e1000e", "e1000"} {
		if err := os.Mkdir(filepath.Join(sysDir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Stray regular files are not modules.
	if err := os.WriteFile(filepath.Join(sysDir, "README"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := newTestSource(t, sysDir, "", "").ListModules()
	want := []string{"e1000", "e1000e", "ext4"}
	if len(got) != len(want) {
		t.Fatalf("ListModules() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListModules()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListModulesMissingRoot(t *testing.T) {
	got := newTestSource(t, "", "", "").ListModules()
	if len(got) != 0 {
		t.Errorf("ListModules() on missing root = %v, want empty", got)
	}
}

func TestReadParametersMissingDir(t *testing.T) {
	src := newTestSource(t, t.TempDir(), "", "")
	if got := src.ReadParameters("e1000e"); len(got) != 0 {
		t.Errorf("ReadParameters() = %v, want empty", got)
	}
}

func TestReadParametersSortedTrimmedWritable(t *testing.T) {
	sysDir := t.TempDir()
	writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o644)
	writeSysfsParam(t, sysDir, "e1000e", "copybreak", "256\n", 0o444)

	got := newTestSource(t, sysDir, "", "").ReadParameters("e1000e")
	if len(got) != 2 {
		t.Fatalf("got %d params, want 2", len(got))
	}
	if got[0].Name != "copybreak" || got[1].Name != "debug" {
		t.Errorf("order = [%s %s], want [copybreak debug]", got[0].Name, got[1].Name)
	}
	if got[0].Value != "256" {
		t.Errorf("value = %q, want %q (trimmed)", got[0].Value, "256")
	}
	if got[0].Writable {
		t.Error("copybreak (0444) reported writable")
	}
	if !got[1].Writable {
		t.Error("debug (0644) reported read-only")
	}
	if got[1].Path == "" {
		t.Error("missing sysfs path")
	}
}

func TestReadParametersGroupWriteBitCounts(t *testing.T) {
	// Any write bit means writable, not just one the current user holds.
	sysDir := t.TempDir()
	writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o464)

	got := newTestSource(t, sysDir, "", "").ReadParameters("e1000e")
	if len(got) != 1 || !got[0].Writable {
		t.Fatalf("group-writable param not reported writable: %+v", got)
	}
}

func TestReadParametersUnreadableValueIsolated(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not restrict root")
	}
	sysDir := t.TempDir()
	writeSysfsParam(t, sysDir, "e1000e", "secret", "hidden", 0o200)
	writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o644)

	got := newTestSource(t, sysDir, "", "").ReadParameters("e1000e")
	if len(got) != 2 {
		t.Fatalf("got %d params, want 2", len(got))
	}
	// Sibling unaffected.
	if got[0].Name != "debug" || got[0].Value != "0" {
		t.Errorf("sibling record corrupted: %+v", got[0])
	}
	// Unreadable value, yet still writable from the permission bits.
	if got[1].Value != ValueUnreadable {
		t.Errorf("value = %q, want %q", got[1].Value, ValueUnreadable)
	}
	if !got[1].Writable {
		t.Error("write-only param reported read-only")
	}
}

func TestWriteParameterSurfacesCause(t *testing.T) {
	src := newTestSource(t, "", "", "")
	err := src.WriteParameter(filepath.Join(t.TempDir(), "missing", "param"), "1")
	if err == nil {
		t.Fatal("expected error writing to missing path")
	}
}

func TestReadDescriptions(t *testing.T) {
	script := `echo "InterruptThrottleRate:Maximum interrupts per second (array of int)"
echo "  debug : Debug level (0=none,...,16=all) "
echo ""
echo "line without separator"`
	src := newTestSource(t, "", "", fakeModinfo(t, script))

	got := src.ReadDescriptions("e1000e")
	want := map[string]string{
		"InterruptThrottleRate": "Maximum interrupts per second (array of int)",
		"debug":                 "Debug level (0=none,...,16=all)",
	}
	if len(got) != len(want) {
		t.Fatalf("ReadDescriptions() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("desc[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestReadDescriptionsFailures(t *testing.T) {
	tests := []struct {
		name string
		bin  string
	}{
		{"tool exits non-zero", ""},
		{"tool missing", filepath.Join(os.TempDir(), "definitely-not-modinfo")},
	}
	tests[0].bin = fakeModinfo(t, "exit 1")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(t, "", "", tt.bin)
			if got := src.ReadDescriptions("e1000e"); len(got) != 0 {
				t.Errorf("ReadDescriptions() = %v, want empty", got)
			}
		})
	}
}

func TestReadPersistedOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "a.conf", "options e1000e InterruptThrottleRate=3000\n")

	got := newTestSource(t, "", dir, "").ReadPersistedOverrides("e1000e")
	entries := got["InterruptThrottleRate"]
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (%v)", len(entries), got)
	}
	want := PersistedOverride{
		Value: "3000",
		File:  "a.conf",
		Line:  "options e1000e InterruptThrottleRate=3000",
	}
	if entries[0] != want {
		t.Errorf("override = %+v, want %+v", entries[0], want)
	}
}

func TestReadPersistedOverridesOrder(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "a.conf", "options e1000e debug=1 copybreak=128\noptions e1000e debug=2\n")
	writeConf(t, dir, "b.conf", "options e1000e debug=3\n")
	writeConf(t, dir, "notes.txt", "options e1000e debug=9\n") // wrong suffix, ignored

	got := newTestSource(t, "", dir, "").ReadPersistedOverrides("e1000e")
	debug := got["debug"]
	if len(debug) != 3 {
		t.Fatalf("got %d debug entries, want 3 (%v)", len(debug), debug)
	}
	// File order, then line order within a file.
	for i, want := range []string{"1", "2", "3"} {
		if debug[i].Value != want {
			t.Errorf("debug[%d].Value = %q, want %q", i, debug[i].Value, want)
		}
	}
	if debug[0].File != "a.conf" || debug[2].File != "b.conf" {
		t.Errorf("file attribution wrong: %+v", debug)
	}
	if len(got["copybreak"]) != 1 {
		t.Errorf("copybreak entries = %v, want 1", got["copybreak"])
	}
}

func TestReadPersistedOverridesIgnoredLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"comment", "# options e1000e debug=1"},
		{"blank", "   "},
		{"other module", "options e1000 debug=1"},
		{"case sensitive module", "options E1000E debug=1"},
		{"not an options directive", "alias eth0 e1000e"},
		{"too few tokens", "options e1000e"},
		{"token without equals", "options e1000e debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConf(t, dir, "a.conf", tt.line+"\n")
			got := newTestSource(t, "", dir, "").ReadPersistedOverrides("e1000e")
			if len(got) != 0 {
				t.Errorf("ReadPersistedOverrides() = %v, want empty", got)
			}
		})
	}
}

func TestReadPersistedOverridesMissingDir(t *testing.T) {
	got := newTestSource(t, "", "", "").ReadPersistedOverrides("e1000e")
	if len(got) != 0 {
		t.Errorf("ReadPersistedOverrides() = %v, want empty", got)
	}
}

func TestBuildModelMergesSources(t *testing.T) {
	sysDir := t.TempDir()
	writeSysfsParam(t, sysDir, "e1000e", "InterruptThrottleRate", "3000\n", 0o644)
	writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o444)

	modprobeDir := t.TempDir()
	writeConf(t, modprobeDir, "a.conf", "options e1000e InterruptThrottleRate=8000\n")

	modinfo := fakeModinfo(t, `echo "debug:Debug level"`)

	model := NewSource(sysDir, modprobeDir, modinfo, nil).BuildModel("e1000e")
	if model.Module != "e1000e" {
		t.Errorf("Module = %q", model.Module)
	}
	if len(model.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(model.Params))
	}

	itr := model.Params[0]
	if itr.Name != "InterruptThrottleRate" {
		t.Fatalf("params not sorted: %+v", model.Params)
	}
	if itr.Description != NoDescription {
		t.Errorf("undocumented param description = %q, want sentinel", itr.Description)
	}
	if len(itr.Persisted) != 1 || itr.Persisted[0].Value != "8000" {
		t.Errorf("persisted = %+v, want one entry with value 8000", itr.Persisted)
	}

	dbg := model.Params[1]
	if dbg.Description != "Debug level" {
		t.Errorf("debug description = %q", dbg.Description)
	}
	if len(dbg.Persisted) != 0 {
		t.Errorf("debug persisted = %+v, want empty", dbg.Persisted)
	}
}

func TestBuildModelLivePresenceAuthoritative(t *testing.T) {
	// A parameter known only to modinfo or modprobe.d must not appear.
	sysDir := t.TempDir()
	writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o644)

	modprobeDir := t.TempDir()
	writeConf(t, modprobeDir, "a.conf", "options e1000e ghost=1\n")
	modinfo := fakeModinfo(t, `echo "phantom:never loaded"`)

	model := NewSource(sysDir, modprobeDir, modinfo, nil).BuildModel("e1000e")
	if len(model.Params) != 1 || model.Params[0].Name != "debug" {
		t.Fatalf("params = %+v, want only debug", model.Params)
	}
}

func TestBuildModelNeverFails(t *testing.T) {
	// All three sources absent: still a valid, empty model.
	model := newTestSource(t, "", "", "").BuildModel("e1000e")
	if model.Module != "e1000e" {
		t.Errorf("Module = %q", model.Module)
	}
	if len(model.Params) != 0 {
		t.Errorf("Params = %+v, want empty", model.Params)
	}
}

func TestWriteThenRebuildShowsReReadValue(t *testing.T) {
	// The displayed value after a write is whatever the live source reports,
	// not the string that was requested.
	sysDir := t.TempDir()
	path := writeSysfsParam(t, sysDir, "e1000e", "debug", "0\n", 0o644)

	src := newTestSource(t, sysDir, "", "")
	if err := src.WriteParameter(path, "  16\n"); err != nil {
		t.Fatal(err)
	}

	model := src.BuildModel("e1000e")
	if len(model.Params) != 1 {
		t.Fatalf("params = %+v", model.Params)
	}
	if got := model.Params[0].Value; got != "16" {
		t.Errorf("re-read value = %q, want %q (normalized), not the raw input", got, "16")
	}
}
