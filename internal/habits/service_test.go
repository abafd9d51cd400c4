package habits

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/models"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/memory"
	"github.com/julianstephens/habitcards/internal/tracker"
	"github.com/julianstephens/habitcards/internal/validation"
)

// flakyStore fails writes on demand and counts SetMany calls
type flakyStore struct {
	*memory.Store
	mu        sync.Mutex
	failWrite bool
	writes    int
}

func (f *flakyStore) SetMany(entries map[string]string) error {
	f.mu.Lock()
	f.writes++
	fail := f.failWrite
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.Store.SetMany(entries)
}

func (f *flakyStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func newTestService(t *testing.T) (*Service, *flakyStore) {
	t.Helper()
	store := &flakyStore{Store: memory.New()}
	clock := func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
	return NewService(store, WithClock(clock)), store
}

func input(title string, freq models.Frequency) validation.HabitInput {
	return validation.HabitInput{
		Title:       title,
		Description: title + " every period",
		HabitType:   string(models.HabitTypeStudy),
		Frequency:   string(freq),
		Minutes:     10,
	}
}

func seed(t *testing.T, store storage.Provider, habits []models.Habit, markers models.ResetMarkers) {
	t.Helper()
	h, _ := json.Marshal(habits)
	m, _ := json.Marshal(markers)
	if err := store.SetMany(map[string]string{
		constants.KeyHabits:       string(h),
		constants.KeyResetMarkers: string(m),
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func storedMarkers(t *testing.T, store storage.Provider) models.ResetMarkers {
	t.Helper()
	raw, err := store.Get(constants.KeyResetMarkers)
	if err != nil {
		t.Fatalf("failed to read markers: %v", err)
	}
	var m models.ResetMarkers
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("failed to decode markers: %v", err)
	}
	return m
}

func TestAddAssignsIDAndStartsPending(t *testing.T) {
	svc, _ := newTestService(t)

	h, err := svc.Add(input("Read", models.FrequencyDaily))
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if h.ID == "" {
		t.Error("Add() should assign an ID")
	}
	if h.Completed {
		t.Error("new habit must not be completed")
	}
	if !h.CreatedAt.Equal(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", h.CreatedAt)
	}

	list := svc.List()
	if len(list) != 1 || list[0].ID != h.ID {
		t.Errorf("List() = %+v", list)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService(t)

	in := input("", models.FrequencyDaily)
	if _, err := svc.Add(in); err == nil {
		t.Fatal("expected validation error")
	}
	if store.writeCount() != 0 {
		t.Error("invalid input must not be written")
	}
}

func TestRefreshDailyRollover(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
		{ID: "b", Title: "Plan", Frequency: models.FrequencyWeekly, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2024-01-01", Weekly: "2024-W1", Monthly: "2024-1"})

	habits, err := svc.Refresh(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if habits[0].Completed {
		t.Error("daily habit should be reset")
	}
	if !habits[1].Completed {
		t.Error("weekly habit should be untouched")
	}

	if m := storedMarkers(t, store); m.Daily != "2024-01-02" || m.Weekly != "2024-W1" || m.Monthly != "2024-1" {
		t.Errorf("stored markers = %+v", m)
	}

	stored := svc.List()
	if stored[0].Completed || !stored[1].Completed {
		t.Errorf("stored habits not updated: %+v", stored)
	}
}

func TestRefreshSamePeriodDoesNotWrite(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2024-01-01", Weekly: "2024-W1", Monthly: "2024-1"})
	before := store.writeCount()

	habits, err := svc.Refresh(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if !habits[0].Completed {
		t.Error("habit should stay completed within the same day")
	}
	if store.writeCount() != before {
		t.Error("Refresh() should not write when no marker changes")
	}
}

func TestRefreshTreatsMalformedDataAsEmpty(t *testing.T) {
	svc, store := newTestService(t)
	if err := store.SetMany(map[string]string{
		constants.KeyHabits:       "{not json",
		constants.KeyResetMarkers: "[]",
	}); err != nil {
		t.Fatal(err)
	}

	habits, err := svc.Refresh(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected empty habit list, got %+v", habits)
	}
	if m := storedMarkers(t, store); m.Daily != "2024-01-01" {
		t.Errorf("markers should be initialised, got %+v", m)
	}
}

func TestRefreshWriteFailureReturnsResult(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2024-01-01"})
	store.failWrite = true

	habits, err := svc.Refresh(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected write error")
	}
	if len(habits) != 1 || habits[0].Completed {
		t.Errorf("evaluated result should still be returned, got %+v", habits)
	}

	// nothing persisted, so the next refresh resets again
	store.failWrite = false
	if m := storedMarkers(t, store); m.Daily != "2024-01-01" {
		t.Errorf("markers must not advance on failed write, got %+v", m)
	}
}

func TestConcurrentRefreshResetsOnce(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2024-01-01", Weekly: "2024-W1", Monthly: "2024-1"})
	before := store.writeCount()

	now := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Refresh(now); err != nil {
				t.Errorf("Refresh() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.writeCount() - before; got != 1 {
		t.Errorf("expected exactly one write, got %d", got)
	}
}

func TestCompleteAfterResetIsNotLost(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2024-01-01", Weekly: "2024-W1", Monthly: "2024-1"})

	now := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	if _, err := svc.Refresh(now); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete("a", now); err != nil {
		t.Fatal(err)
	}
	habits, err := svc.Refresh(now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !habits[0].Completed {
		t.Error("completion within the new day must survive a later refresh")
	}
}

func TestCompleteAcrossMidnightCountsForNewDay(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, DurationSeconds: 3600},
	}, models.ResetMarkers{})

	started := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if _, err := svc.Refresh(started); err != nil {
		t.Fatal(err)
	}
	finished := time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC)
	if _, err := svc.Complete("a", finished); err != nil {
		t.Fatal(err)
	}
	if got := storedMarkers(t, store).Daily; got != "2024-01-02" {
		t.Errorf("daily marker = %q, want 2024-01-02", got)
	}

	habits, err := svc.Refresh(finished.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if !habits[0].Completed {
		t.Error("a run finishing after midnight must count for the new day")
	}
}

func TestClearMarkerUnblocksReset(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, []models.Habit{
		{ID: "a", Title: "Run", Frequency: models.FrequencyDaily, Completed: true, DurationSeconds: 60},
	}, models.ResetMarkers{Daily: "2099-01-01", Weekly: "2024-W1", Monthly: "2024-1"})

	now := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	habits, err := svc.Refresh(now)
	if err != nil {
		t.Fatal(err)
	}
	if !habits[0].Completed {
		t.Fatal("a future marker should hold the daily cohort")
	}

	if err := svc.ClearMarker(models.FrequencyDaily); err != nil {
		t.Fatalf("ClearMarker() failed: %v", err)
	}
	if got := storedMarkers(t, store); got.Daily != "" || got.Weekly != "2024-W1" {
		t.Errorf("unexpected markers after clear: %+v", got)
	}

	habits, err = svc.Refresh(now)
	if err != nil {
		t.Fatal(err)
	}
	if habits[0].Completed {
		t.Error("daily habit should reset once the future marker is cleared")
	}
	if got := storedMarkers(t, store).Daily; got != "2024-01-02" {
		t.Errorf("daily marker = %q, want 2024-01-02", got)
	}

	if err := svc.ClearMarker(models.Frequency("Yearly")); err == nil {
		t.Error("expected an error for an unknown frequency")
	}
}

func TestCompleteAndDeleteByTitle(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Add(input("Meditate", models.FrequencyDaily)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(input("Journal", models.FrequencyMonthly)); err != nil {
		t.Fatal(err)
	}

	h, err := svc.Complete("meditate", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if !h.Completed {
		t.Error("returned habit should be completed")
	}

	stats := svc.Stats()
	if stats.Daily.Completed != 1 || stats.Daily.Total != 1 || stats.Monthly.Completed != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if _, err := svc.Delete("Journal"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if len(svc.List()) != 1 {
		t.Errorf("expected 1 habit after delete, got %d", len(svc.List()))
	}
}

func TestFindErrors(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Find("missing"); !errors.Is(err, tracker.ErrHabitNotFound) {
		t.Errorf("Find() error = %v, want ErrHabitNotFound", err)
	}

	svc.Add(input("Run", models.FrequencyDaily))
	svc.Add(input("run", models.FrequencyWeekly))
	if _, err := svc.Find("RUN"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Find() error = %v, want ErrAmbiguous", err)
	}
}

func TestFindByIDPrefix(t *testing.T) {
	svc, _ := newTestService(t)
	h, err := svc.Add(input("Stretch", models.FrequencyDaily))
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Find(h.ID[:8])
	if err != nil {
		t.Fatalf("Find(prefix) failed: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("Find(prefix) = %s, want %s", got.ID, h.ID)
	}
	if _, err := svc.Find(h.ID[:2]); !errors.Is(err, tracker.ErrHabitNotFound) {
		t.Errorf("short prefix should not match, got %v", err)
	}
}

func TestNewestIncludesCompleted(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	habits := []models.Habit{
		{ID: "old", CreatedAt: base},
		{ID: "done", CreatedAt: base.Add(time.Hour), Completed: true},
	}
	got := Newest(habits)
	if len(got) != 2 || got[0].ID != "done" {
		t.Errorf("Newest() = %+v", got)
	}
	if habits[0].ID != "old" {
		t.Error("Newest() must not reorder its input")
	}
}

func TestPendingNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	habits := []models.Habit{
		{ID: "old", CreatedAt: base},
		{ID: "done", CreatedAt: base.Add(time.Hour), Completed: true},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
	}

	got := Pending(habits)
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("Pending() = %+v", got)
	}
}

func TestClear(t *testing.T) {
	svc, store := newTestService(t)
	svc.Add(input("Run", models.FrequencyDaily))
	if err := store.Set(constants.KeyColorMode, "true"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if len(svc.List()) != 0 {
		t.Error("habits should be gone")
	}
	if _, err := store.Get(constants.KeyResetMarkers); !errors.Is(err, storage.ErrNotFound) {
		t.Error("markers should be removed")
	}
	if _, err := store.Get(constants.KeyColorMode); err != nil {
		t.Error("unrelated keys must survive")
	}
}
