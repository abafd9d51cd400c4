package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitcards/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitcards.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('customCards', '[]'), ('colorMode', 'true')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

// steppingClock advances one second per call so backups get distinct names
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newManager(t *testing.T, dbPath string) *Manager {
	t.Helper()
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	return mgr
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newManager(t, dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.Dir() {
		t.Errorf("backup written to %s, want dir %s", backupPath, mgr.Dir())
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreateSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("backups share a path: %s", first)
	}
	if filepath.Base(second) != "habitcards-20240301-090000-1.db" {
		t.Errorf("unexpected name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newManager(t, dbPath)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newManager(t, dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatal(err)
		}
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "habitcards-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Size == 0 {
			t.Error("backup size is 0")
		}
		if b.HumanSize() == "" {
			t.Error("empty human size")
		}
		if b.Timestamp.IsZero() {
			t.Error("backup timestamp is zero")
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newManager(t, dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value) VALUES ('profile', '{}')"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if got := countRows(t, dbPath); got != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", got)
	}

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if previous == "" {
		t.Fatal("expected a pre-restore backup")
	}
	if got := countRows(t, previous); got != 3 {
		t.Errorf("pre-restore backup has %d rows, want 3", got)
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newManager(t, dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not sqlite at all, not even close"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error for corrupt backup")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}

func TestJSONStoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitcards.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"data":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	mgr := newManager(t, path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(path, []byte(`{"version":1,"data":{"colorMode":"true"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1,"data":{}}` {
		t.Errorf("restored content = %s", data)
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager("/tmp/hc/habitcards.db")
	if got := mgr.Resolve("habitcards-20240101-000000.db"); got != filepath.Join("/tmp/hc/backups", "habitcards-20240101-000000.db") {
		t.Errorf("Resolve(name) = %s", got)
	}
	if got := mgr.Resolve("/elsewhere/x.db"); got != "/elsewhere/x.db" {
		t.Errorf("Resolve(path) = %s", got)
	}
}
