package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestMigrations(t *testing.T, files map[string]string) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []int
		wantErr bool
	}{
		{
			name:  "sorted by version",
			files: map[string]string{"002_b.sql": "SELECT 1;", "001_a.sql": "SELECT 1;", "README.md": "ignored"},
			want:  []int{1, 2},
		},
		{
			name:    "missing underscore",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: true,
		},
		{
			name:    "non numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: true,
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: true,
		},
		{
			name:    "duplicate version",
			files:   map[string]string{"001_a.sql": "SELECT 1;", "01_b.sql": "SELECT 1;"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, setupTestMigrations(t, tt.files), DriverSQLite)
			got, err := runner.ReadMigrationFiles()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d migrations, got %d", len(tt.want), len(got))
			}
			for i, v := range tt.want {
				if got[i].Version != v {
					t.Errorf("migration %d: expected version %d, got %d", i, v, got[i].Version)
				}
			}
		})
	}
}

func TestApplyMigrationsSQLite(t *testing.T) {
	db := openSQLite(t)
	fsys := setupTestMigrations(t, map[string]string{
		"001_init.sql":    "CREATE TABLE kv_records (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"002_updated.sql": "ALTER TABLE kv_records ADD COLUMN updated_at TEXT;",
	})
	runner := NewRunner(db, fsys, DriverSQLite)

	var logged []string
	count, err := runner.ApplyMigrations(func(msg string) { logged = append(logged, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO kv_records (key, value, updated_at) VALUES ('a', '1', 'now')"); err != nil {
		t.Errorf("migrated table unusable: %v", err)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations on second run, got %d", count)
	}
}

func TestApplyMigrationsRollback(t *testing.T) {
	db := openSQLite(t)
	runner := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_bad.sql": "CREATE TABLE kv_records (key TEXT PRIMARY KEY); THIS IS INVALID SQL;",
	}), DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("expected invalid SQL to fail")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after rollback, got %d", version)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := openSQLite(t)
	runner := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_init.sql": "SELECT 1;",
	}), DriverSQLite)

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for database newer than the embedded migrations")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("expected ApplyMigrations to refuse a newer database")
	}
}
