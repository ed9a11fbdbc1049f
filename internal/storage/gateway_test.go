package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"daylist/internal/model"
)

func setupGateway(t *testing.T) (*Gateway, *SQLiteRepository) {
	t.Helper()
	repo := setupRepo(t)
	return NewGateway(repo, nil), repo
}

func TestGatewaySaveLoadTasksRoundTrip(t *testing.T) {
	g, _ := setupGateway(t)
	at := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	in := []model.Task{
		{ID: "t1", Title: "Call mom", Notes: "trip", ScheduledAt: &at, Importance: model.ImportanceHigh, Tags: []string{"Family"}},
		{ID: "t2", Title: "Water plants", Done: true, Importance: model.ImportanceNormal},
	}
	g.SaveTasks(in)

	got := g.LoadTasks(false)
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	for i := range in {
		a, b := in[i], got[i]
		if a.ID != b.ID || a.Title != b.Title || a.Done != b.Done || a.Notes != b.Notes ||
			a.Importance != b.Importance || !reflect.DeepEqual(a.Tags, b.Tags) {
			t.Fatalf("task %d differs: %+v vs %+v", i, a, b)
		}
	}
	if got[0].ScheduledAt == nil || !got[0].ScheduledAt.Equal(at) {
		t.Fatalf("schedule did not round trip: %v", got[0].ScheduledAt)
	}
	if got[1].ScheduledAt != nil {
		t.Fatalf("expected nil schedule, got %v", got[1].ScheduledAt)
	}
}

func TestGatewaySaveLoadTrashRoundTrip(t *testing.T) {
	g, _ := setupGateway(t)
	deleted := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	in := []model.DeletedEntry{
		{
			ID:            "e1",
			Task:          model.Task{ID: "t9", Title: "Dropped", Importance: model.ImportanceLow, Tags: []string{"x"}},
			DeletedAt:     deleted,
			OriginalIndex: 2,
		},
	}
	g.SaveTrash(in)

	got := g.LoadTrash()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.ID != "e1" || !e.DeletedAt.Equal(deleted) || e.OriginalIndex != 2 ||
		e.Task.ID != "t9" || e.Task.Title != "Dropped" ||
		e.Task.Importance != model.ImportanceLow || !reflect.DeepEqual(e.Task.Tags, []string{"x"}) {
		t.Fatalf("entry differs: %+v", e)
	}
}

func TestGatewayLoadTasksSeedsFreshInstall(t *testing.T) {
	g, _ := setupGateway(t)
	got := g.LoadTasks(true)
	if len(got) != 2 {
		t.Fatalf("expected 2 seeded tasks, got %d", len(got))
	}
	for _, task := range got {
		if err := task.Validate(); err != nil {
			t.Fatalf("seed task invalid: %v", err)
		}
	}
	// An intentionally emptied list must stay empty.
	if got := g.LoadTasks(false); len(got) != 0 {
		t.Fatalf("expected empty load without seeding, got %d", len(got))
	}
}

func TestGatewayUnreadableSnapshotFallsBack(t *testing.T) {
	g, repo := setupGateway(t)
	if err := MigrateDown(repo.DB()); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	tasks := g.LoadTasks(false)
	if len(tasks) != 2 {
		t.Fatalf("expected seeded fallback, got %d tasks", len(tasks))
	}
	if trash := g.LoadTrash(); len(trash) != 0 {
		t.Fatalf("expected empty trash fallback, got %v", trash)
	}
}

func TestGatewayNormalizesUnknownImportance(t *testing.T) {
	g, repo := setupGateway(t)
	rec := TaskRecord{ID: "t1", Title: "Weird", Importance: "critical"}
	if err := repo.ReplaceTasks(context.Background(), []TaskRecord{rec}); err != nil {
		t.Fatalf("replace tasks: %v", err)
	}
	got := g.LoadTasks(false)
	if len(got) != 1 || got[0].Importance != model.ImportanceNormal {
		t.Fatalf("unexpected load: %+v", got)
	}
}
