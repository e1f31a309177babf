package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(conf, Default()) {
		t.Errorf("Load(\"\") differs from Default()")
	}

	if conf.CatchAll == "" {
		t.Errorf("Default() has no catch-all bucket")
	}
}

func TestLoadOverride(t *testing.T) {
	content := `
vendors:
  - name: Fortinet
    keywords: ["fortinet", "fortios"]
totalCap: 5
`
	path := filepath.Join(t.TempDir(), "threatdeck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []VendorCategory{{Name: "Fortinet", Keywords: []string{"fortinet", "fortios"}}}
	if !reflect.DeepEqual(conf.Vendors, want) {
		t.Errorf("Load() vendors = %v, want %v", conf.Vendors, want)
	}

	if conf.TotalCap != 5 {
		t.Errorf("Load() totalCap = %d, want 5", conf.TotalCap)
	}

	// Untouched fields keep their defaults
	if conf.RetentionDays != Default().RetentionDays {
		t.Errorf("Load() retentionDays = %d", conf.RetentionDays)
	}

	if len(conf.Products) != len(Default().Products) {
		t.Errorf("Load() products = %v", conf.Products)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Errorf("Load() expected an error for a missing file")
	}
}
