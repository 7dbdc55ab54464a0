package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  int
		name     string
	}{
		{"0001_create_transactions.sql", true, 1, "create_transactions"},
		{"0012_add_index.sql", true, 12, "add_index"},
		{"001_invalid.sql", false, 0, ""},        // wrong number format
		{"0001_test", false, 0, ""},              // missing .sql
		{"0001.sql", false, 0, ""},               // missing name
		{"invalid_0001_test.sql", false, 0, ""}, // wrong order
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, ok := parseMigrationFilename(tt.filename)
			if ok != tt.valid {
				t.Fatalf("Expected valid=%v, got %v", tt.valid, ok)
			}
			if version != tt.version || name != tt.name {
				t.Errorf("Expected (%d, %q), got (%d, %q)", tt.version, tt.name, version, name)
			}
		})
	}
}

func TestChecksumConsistency(t *testing.T) {
	a := checksum([]byte("CREATE TABLE test (id INT64);"))
	b := checksum([]byte("CREATE TABLE test (id INT64);"))
	c := checksum([]byte("CREATE TABLE different (id INT64);"))

	if a != b {
		t.Error("Same content should produce the same checksum")
	}
	if a == c {
		t.Error("Different content should produce different checksums")
	}
}

func TestReadMigrations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"0002_second.sql": "SELECT 2 FROM `{{PROJECT_ID}}.{{DATASET_ID}}.t`",
		"0001_first.sql":  "SELECT 1",
		"README.md":       "notes",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	migrations, err := readMigrations(dir, "proj", "ds", zerolog.Nop())
	if err != nil {
		t.Fatalf("readMigrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("Expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Errorf("Expected migrations sorted by version, got %d, %d", migrations[0].Version, migrations[1].Version)
	}
	if !strings.Contains(migrations[1].SQL, "`proj.ds.t`") {
		t.Errorf("Expected placeholders replaced, got %q", migrations[1].SQL)
	}
	if migrations[1].Checksum != checksum([]byte(files["0002_second.sql"])) {
		t.Error("Expected checksum over the raw file content")
	}
}

func TestReadMigrations_DuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0001_a.sql", "0001_b.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	if _, err := readMigrations(dir, "p", "d", zerolog.Nop()); err == nil {
		t.Error("Expected error for duplicate versions")
	}
}

func TestRepositoryMigrationsParse(t *testing.T) {
	migrations, err := readMigrations(filepath.Join("..", "..", "migrations", "bigquery"), "p", "d", zerolog.Nop())
	if err != nil {
		t.Fatalf("readMigrations failed: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("Expected checked-in migrations")
	}
	for _, m := range migrations {
		if strings.Contains(m.SQL, "{{") {
			t.Errorf("Migration %s still has placeholders", m.Filename)
		}
	}
}

func TestPendingMigrations(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	applied := []AppliedMigration{{Version: 1}, {Version: 3}}

	pending := pendingMigrations(all, applied)
	if len(pending) != 1 || pending[0].Version != 2 {
		t.Errorf("Expected only version 2 pending, got %+v", pending)
	}
}
