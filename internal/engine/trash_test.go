package engine

import (
	"reflect"
	"testing"
	"time"

	"daylist/internal/model"
)

func newTrashFixture(t *testing.T) (*Store, *Trash, *time.Time) {
	t.Helper()
	s := NewStore(SortManual)
	tr := NewTrash(s, DefaultUndoWindow, nil)
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	tr.clock = func() time.Time { return now }
	t.Cleanup(tr.Stop)
	return s, tr, &now
}

func TestDeleteThenUndoRestoresIdenticalTask(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	at := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	original := model.Task{
		ID:          "a",
		Title:       "Call mom",
		Notes:       "about the trip",
		ScheduledAt: &at,
		Importance:  model.ImportanceHigh,
		Tags:        []string{"Family"},
	}
	s.Insert(task("x", "before"), false)
	s.Insert(original, false)
	s.Insert(task("y", "after"), false)

	if !tr.Delete("a") {
		t.Fatal("delete reported false")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 tasks after delete, got %d", s.Len())
	}
	if !tr.Undo() {
		t.Fatal("undo reported false inside the window")
	}
	got, ok := s.Get("a")
	if !ok {
		t.Fatal("task not restored")
	}
	if got.Title != original.Title || got.Notes != original.Notes ||
		got.Importance != original.Importance || !got.ScheduledAt.Equal(at) ||
		!reflect.DeepEqual(got.Tags, original.Tags) {
		t.Fatalf("restored task differs: %+v", got)
	}
	if len(tr.Entries()) != 0 {
		t.Fatalf("undo left a trash entry: %v", tr.Entries())
	}
}

func TestUndoRestoresAtClampedIndex(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	s.Insert(task("b", "b"), false)
	s.Insert(task("c", "c"), false)
	tr.Delete("c")
	s.Remove("a")
	s.Remove("b")
	tr.Undo()
	assertOrder(t, s, "c")
}

func TestUndoAfterDeadlineIsNoOpButTrashKeepsEntry(t *testing.T) {
	s, tr, now := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	tr.Delete("a")
	*now = now.Add(DefaultUndoWindow + time.Second)
	if tr.Undo() {
		t.Fatal("undo succeeded past the deadline")
	}
	if s.Len() != 0 {
		t.Fatalf("store changed: %d tasks", s.Len())
	}
	entries := tr.Entries()
	if len(entries) != 1 || entries[0].Task.ID != "a" {
		t.Fatalf("trash entry lost: %v", entries)
	}
	if !tr.RestoreEntry(entries[0].ID) {
		t.Fatal("explicit restore failed")
	}
	if _, ok := s.Get("a"); !ok {
		t.Fatal("task not recoverable from trash")
	}
}

func TestNewDeleteSupersedesSlotKeepsOlderEntry(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	s.Insert(task("b", "b"), false)
	tr.Delete("a")
	tr.Delete("b")
	if !tr.Undo() {
		t.Fatal("undo of most recent delete failed")
	}
	if _, ok := s.Get("b"); !ok {
		t.Fatal("expected b back, undo targeted the wrong slot")
	}
	if _, ok := s.Get("a"); ok {
		t.Fatal("superseded deletion must not be undone")
	}
	entries := tr.Entries()
	if len(entries) != 1 || entries[0].Task.ID != "a" {
		t.Fatalf("expected a's entry to survive: %v", entries)
	}
	if tr.Undo() {
		t.Fatal("second undo should be a no-op")
	}
}

func TestDeleteUnknownIDReportsFalse(t *testing.T) {
	_, tr, _ := newTrashFixture(t)
	if tr.Delete("missing") {
		t.Fatal("expected false for unknown id")
	}
}

func TestEntriesOrderedMostRecentFirst(t *testing.T) {
	s, tr, now := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	s.Insert(task("b", "b"), false)
	tr.Delete("a")
	*now = now.Add(time.Minute)
	tr.Delete("b")
	entries := tr.Entries()
	if len(entries) != 2 || entries[0].Task.ID != "b" || entries[1].Task.ID != "a" {
		t.Fatalf("unexpected order: %v", entries)
	}
}

func TestPurgeExpiredDropsOldEntriesOnly(t *testing.T) {
	s, tr, now := newTrashFixture(t)
	s.Insert(task("old", "old"), false)
	s.Insert(task("fresh", "fresh"), false)
	tr.Delete("old")
	*now = now.Add(8 * 24 * time.Hour)
	tr.Delete("fresh")
	removed := tr.PurgeExpired(0)
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	entries := tr.Entries()
	if len(entries) != 1 || entries[0].Task.ID != "fresh" {
		t.Fatalf("unexpected entries after purge: %v", entries)
	}
}

func TestRestoreEntryClearsMatchingSlot(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	tr.Delete("a")
	entries := tr.Entries()
	if !tr.RestoreEntry(entries[0].ID) {
		t.Fatal("restore failed")
	}
	if tr.Undo() {
		t.Fatal("undo after explicit restore must not duplicate the task")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", s.Len())
	}
}

func TestRestoreEntryKeepsEntryWhenIDReappears(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	s.Insert(task("a", "first"), false)
	tr.Delete("a")
	s.Insert(task("a", "second"), false)

	entries := tr.Entries()
	if tr.RestoreEntry(entries[0].ID) {
		t.Fatal("restore reported success although the id is taken")
	}
	if len(tr.Entries()) != 1 {
		t.Fatalf("trash entry lost: %v", tr.Entries())
	}
	got, _ := s.Get("a")
	if got.Title != "second" {
		t.Fatalf("store task replaced: %+v", got)
	}
	if tr.Undo() {
		t.Fatal("undo reported success although the id is taken")
	}
	if len(tr.Entries()) != 1 {
		t.Fatalf("undo dropped the entry: %v", tr.Entries())
	}
}

func TestEmptyAllClearsTrash(t *testing.T) {
	s, tr, _ := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	tr.Delete("a")
	tr.EmptyAll()
	if len(tr.Entries()) != 0 {
		t.Fatalf("trash not empty: %v", tr.Entries())
	}
}

func TestUndoDeadlineReporting(t *testing.T) {
	s, tr, now := newTrashFixture(t)
	s.Insert(task("a", "a"), false)
	if _, armed := tr.UndoDeadline(); armed {
		t.Fatal("slot armed before any delete")
	}
	tr.Delete("a")
	deadline, armed := tr.UndoDeadline()
	if !armed || !deadline.Equal(now.Add(DefaultUndoWindow)) {
		t.Fatalf("unexpected deadline: %v armed=%v", deadline, armed)
	}
}
