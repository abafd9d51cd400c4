package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitcards/internal/backup"
	"github.com/julianstephens/habitcards/internal/cli"
	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/storage/sqlite"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return cli.NewContext(store), store
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	// missing backups is a warning, not a failure
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	if _, err := backup.NewManager(ctx.Store.GetConfigPath()).Create(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("backups should be found: %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestCheckStoredData(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	if err := checkStoredData(ctx); err != nil {
		t.Fatalf("empty store should pass: %v", err)
	}
	if err := ctx.Store.Set(constants.KeyHabits, "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.Set(constants.KeyColorMode, "purple"); err != nil {
		t.Fatal(err)
	}
	if err := checkStoredData(ctx); err == nil {
		t.Error("malformed values should fail the check")
	}
}

func TestCheckHabitIntegrity(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	if err := ctx.Store.Set(constants.KeyResetMarkers, `{"daily":"yesterday"}`); err != nil {
		t.Fatal(err)
	}
	if err := checkHabitIntegrity(ctx); err == nil {
		t.Error("an unreadable marker should be reported")
	}

	if err := ctx.Store.Set(constants.KeyResetMarkers, `{"daily":"2099-01-01"}`); err != nil {
		t.Fatal(err)
	}
	if err := checkHabitIntegrity(ctx); err == nil {
		t.Error("a marker dated in the future should be reported")
	}

	if err := ctx.Store.Set(constants.KeyResetMarkers, `{"daily":"2000-01-01"}`); err != nil {
		t.Fatal(err)
	}
	if err := checkHabitIntegrity(ctx); err != nil {
		t.Errorf("a past marker is healthy: %v", err)
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}
	if err := ctx.Store.Set(constants.KeySettings, `{"timezone":"Nowhere/Special","notifications_enabled":true}`); err != nil {
		t.Fatal(err)
	}
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("expected error for invalid stored timezone")
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate on an up to date database failed: %v", err)
	}
	if err := checkMigrationsComplete(ctx); err != nil {
		t.Errorf("migrations should be complete: %v", err)
	}
}
