package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"daylist/internal/model"
)

// Gateway sits between the in-memory engine and the repository. Saves are
// synchronous and fire-and-forget: a failed write is logged and swallowed,
// the in-memory state stays authoritative for the session. Loads degrade to
// an empty (or seeded) collection instead of failing.
type Gateway struct {
	repo Repository
	log  *zap.Logger
}

func NewGateway(repo Repository, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{repo: repo, log: log}
}

// SaveTasks overwrites the tasks snapshot with the given collection.
func (g *Gateway) SaveTasks(tasks []model.Task) {
	records := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = taskToRecord(i, t)
	}
	if err := g.repo.ReplaceTasks(context.Background(), records); err != nil {
		g.log.Error("tasks snapshot write failed", zap.Error(err))
	}
}

// SaveTrash overwrites the trash snapshot with the given entries.
func (g *Gateway) SaveTrash(entries []model.DeletedEntry) {
	records := make([]TrashRecord, len(entries))
	for i, e := range entries {
		records[i] = entryToRecord(i, e)
	}
	if err := g.repo.ReplaceTrash(context.Background(), records); err != nil {
		g.log.Error("trash snapshot write failed", zap.Error(err))
	}
}

// LoadTasks reads the tasks snapshot. An unreadable snapshot falls back to
// the seeded example tasks; a readable-but-empty one does too when seedEmpty
// is set (first run).
func (g *Gateway) LoadTasks(seedEmpty bool) []model.Task {
	records, err := g.repo.LoadTasks(context.Background())
	if err != nil {
		g.log.Error("tasks snapshot read failed, starting from seeds", zap.Error(err))
		return SeedTasks()
	}
	if len(records) == 0 && seedEmpty {
		return SeedTasks()
	}
	out := make([]model.Task, 0, len(records))
	for _, rec := range records {
		out = append(out, recordToTask(rec))
	}
	return out
}

// LoadTrash reads the trash snapshot, degrading to an empty log.
func (g *Gateway) LoadTrash() []model.DeletedEntry {
	records, err := g.repo.LoadTrash(context.Background())
	if err != nil {
		g.log.Error("trash snapshot read failed, starting empty", zap.Error(err))
		return nil
	}
	out := make([]model.DeletedEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, recordToEntry(rec))
	}
	return out
}

// SeedTasks returns the two example tasks a fresh install starts with.
func SeedTasks() []model.Task {
	return []model.Task{
		{
			ID:         uuid.NewString(),
			Title:      "Tap a task to mark it done",
			Notes:      "Swipe left to delete; undo is available for a few seconds.",
			Importance: model.ImportanceNormal,
			Tags:       []string{"getting-started"},
		},
		{
			ID:         uuid.NewString(),
			Title:      "Try typing \"Call mom tomorrow !high\"",
			Notes:      "Quick add understands dates and importance.",
			Importance: model.ImportanceNormal,
			Tags:       []string{"getting-started"},
		},
	}
}

func taskToRecord(position int, t model.Task) TaskRecord {
	return TaskRecord{
		Position:    position,
		ID:          t.ID,
		Title:       t.Title,
		Done:        t.Done,
		Notes:       t.Notes,
		ScheduledAt: cloneTime(t.ScheduledAt),
		Importance:  string(t.Importance),
		Tags:        append([]string(nil), t.Tags...),
	}
}

func recordToTask(rec TaskRecord) model.Task {
	importance := model.Importance(rec.Importance)
	if !importance.IsValid() {
		importance = model.ImportanceNormal
	}
	return model.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Done:        rec.Done,
		Notes:       rec.Notes,
		ScheduledAt: cloneTime(rec.ScheduledAt),
		Importance:  importance,
		Tags:        append([]string(nil), rec.Tags...),
	}
}

func entryToRecord(position int, e model.DeletedEntry) TrashRecord {
	task := taskToRecord(0, e.Task)
	return TrashRecord{
		Position:      position,
		ID:            e.ID,
		DeletedAt:     e.DeletedAt,
		OriginalIndex: e.OriginalIndex,
		TaskID:        task.ID,
		Title:         task.Title,
		Done:          task.Done,
		Notes:         task.Notes,
		ScheduledAt:   task.ScheduledAt,
		Importance:    task.Importance,
		Tags:          task.Tags,
	}
}

func recordToEntry(rec TrashRecord) model.DeletedEntry {
	return model.DeletedEntry{
		ID:        rec.ID,
		DeletedAt: rec.DeletedAt,
		Task: recordToTask(TaskRecord{
			ID:          rec.TaskID,
			Title:       rec.Title,
			Done:        rec.Done,
			Notes:       rec.Notes,
			ScheduledAt: rec.ScheduledAt,
			Importance:  rec.Importance,
			Tags:        rec.Tags,
		}),
		OriginalIndex: rec.OriginalIndex,
	}
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	at := *v
	return &at
}
