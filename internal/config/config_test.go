package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoad_FullFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "extension: \".script\"\nentry: \"boot.script\"\ntrace: true\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Extension: ".script", Entry: "boot.script", Trace: true}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_PartialFileFillsInMissingFieldsFromDefaults(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "trace: true\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Extension: DefaultExtension, Entry: DefaultEntry, Trace: true}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_MalformedFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "extension: [this is not a string\n")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func write(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
}
