package storage

import "context"

// Repository persists the two snapshots. Each Replace is a full-document
// overwrite: the stored snapshot is exactly the passed slice, in order.
type Repository interface {
	ReplaceTasks(ctx context.Context, in []TaskRecord) error
	LoadTasks(ctx context.Context) ([]TaskRecord, error)
	ReplaceTrash(ctx context.Context, in []TrashRecord) error
	LoadTrash(ctx context.Context) ([]TrashRecord, error)
}
