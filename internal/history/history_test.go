package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/flash/flashtest"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != SchemaVersion {
		t.Errorf("version = %d, want %d", result.Version, SchemaVersion)
	}
}

func TestMigrateFreshFile(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if !result.Changed || result.Version != SchemaVersion {
		t.Errorf("Migrate() = %+v, want Changed at version %d", *result, SchemaVersion)
	}
}

func TestMigrateRefusesDirtySchema(t *testing.T) {
	db := testDB(t)
	if _, err := db.Exec(`UPDATE schema_migrations SET dirty = 1`); err != nil {
		t.Fatal(err)
	}

	_, err := db.Migrate()
	if !errors.Is(err, ErrDirtySchema) {
		t.Errorf("Migrate() error = %v, want ErrDirtySchema", err)
	}
}

func TestMigrateRefusesNewerSchema(t *testing.T) {
	db := testDB(t)
	if _, err := db.Exec(`UPDATE schema_migrations SET version = ?`, SchemaVersion+1); err != nil {
		t.Fatal(err)
	}

	_, err := db.Migrate()
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Migrate() error = %v, want ErrSchemaTooNew", err)
	}
}

func TestEntriesAreAppendOnly(t *testing.T) {
	db := testDB(t)
	if err := db.Record(&Entry{
		MessageID: "m1", Scope: "global", Category: "info",
		Content: "saved", Event: EventAdded, At: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(`UPDATE flash_history SET content = 'edited'`); err == nil {
		t.Fatal("UPDATE on flash_history succeeded, want append-only error")
	}
	entries, err := db.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Content != "saved" {
		t.Errorf("entries = %+v, want original content", entries)
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := testDB(t)
	base := time.UnixMilli(1_700_000_000_000)

	entries := []*Entry{
		{MessageID: "m1", Scope: "global", Category: "alert", Content: "Saved", Event: EventAdded, At: base},
		{MessageID: "m1", Scope: "global", Category: "alert", Content: "Saved", Event: EventRemoved, Reason: "expired", At: base.Add(5 * time.Second)},
		{MessageID: "m2", Scope: "sidebar", Category: "info", Content: "Hi", Event: EventAdded, At: base.Add(time.Second)},
	}
	for _, e := range entries {
		if err := db.Record(e); err != nil {
			t.Fatal(err)
		}
		if e.ID == 0 {
			t.Error("Record() did not set ID")
		}
	}

	got, err := db.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Reason != "expired" || got[1].MessageID != "m2" {
		t.Errorf("order = %+v", got)
	}
	if !got[0].At.Equal(base.Add(5 * time.Second)) {
		t.Errorf("At = %v, want %v", got[0].At, base.Add(5*time.Second))
	}
}

func TestRecordStampsTime(t *testing.T) {
	db := testDB(t)
	e := &Entry{MessageID: "m", Scope: "global", Category: "alert", Content: "x", Event: EventAdded}
	if err := db.Record(e); err != nil {
		t.Fatal(err)
	}
	if e.At.IsZero() {
		t.Error("Record() should stamp At")
	}
}

func TestReasonCounts(t *testing.T) {
	db := testDB(t)
	for _, reason := range []string{"expired", "expired", "navigated", "dismissed"} {
		if err := db.Record(&Entry{MessageID: "m", Scope: "global", Category: "alert", Content: "x", Event: EventRemoved, Reason: reason}); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Record(&Entry{MessageID: "m", Scope: "global", Category: "alert", Content: "x", Event: EventAdded}); err != nil {
		t.Fatal(err)
	}

	counts, err := db.ReasonCounts()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"expired": 2, "navigated": 1, "dismissed": 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%s] = %d, want %d", k, counts[k], v)
		}
	}
}

func TestRecorderPersistsLifecycle(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	rec := NewRecorder(db, b, zap.NewNop())
	rec.Start(context.Background())
	defer rec.Stop()

	clock := flashtest.New()
	svc := flash.NewService(flash.DefaultConfig(), clock, nil, b, zap.NewNop())

	m := svc.Add("Saved", flash.Options{Scope: "form"})
	svc.Add("Saved", flash.Options{Scope: "form"})
	clock.Advance(5 * time.Second)

	var got []Entry
	waitFor(t, func() bool {
		got, _ = db.Recent(10)
		return len(got) == 4
	})

	counts, err := db.ReasonCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["replaced"] != 1 || counts["expired"] != 1 {
		t.Errorf("counts = %v, want replaced=1 expired=1", counts)
	}

	var found bool
	for _, e := range got {
		if e.MessageID == m.ID() && e.Event == EventRemoved {
			found = true
			if e.Reason != "replaced" || e.Scope != "form" || e.Content != "Saved" {
				t.Errorf("entry = %+v", e)
			}
		}
	}
	if !found {
		t.Error("replacement of first message not recorded")
	}
}

func TestRecorderStop(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	rec := NewRecorder(db, b, zap.NewNop())
	rec.Start(context.Background())
	rec.Stop()

	if n := b.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d after Stop, want 0", n)
	}
	// Safe on a recorder that never started.
	NewRecorder(db, b, zap.NewNop()).Stop()
}
