package storage

import "time"

// TaskRecord is the persisted shape of a task. Position is the task's slot
// in the ordered snapshot.
type TaskRecord struct {
	Position    int
	ID          string
	Title       string
	Done        bool
	Notes       string
	ScheduledAt *time.Time
	Importance  string
	Tags        []string
}

// TrashRecord is the persisted shape of a deleted-task entry: the trash
// entry's own identity plus an embedded task record.
type TrashRecord struct {
	Position      int
	ID            string
	DeletedAt     time.Time
	OriginalIndex int
	TaskID        string
	Title         string
	Done          bool
	Notes         string
	ScheduledAt   *time.Time
	Importance    string
	Tags          []string
}
