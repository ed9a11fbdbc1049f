package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	at := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "task-1",
		Title:       "Water the plants",
		Importance:  ImportanceNormal,
		ScheduledAt: &at,
		Tags:        []string{"Home", "garden"},
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankTitle(t *testing.T) {
	task := Task{ID: "task-1", Title: "   ", Importance: ImportanceNormal}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank title, got nil")
	}
}

func TestTaskValidateRejectsInvalidImportance(t *testing.T) {
	task := Task{ID: "task-1", Title: "Bad level", Importance: Importance("critical")}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidImportance) {
		t.Fatalf("expected ErrInvalidImportance, got: %v", err)
	}
}

func TestTaskValidateRejectsCaseInsensitiveDuplicateTags(t *testing.T) {
	task := Task{
		ID:         "task-1",
		Title:      "Tagged",
		Importance: ImportanceLow,
		Tags:       []string{"Work", "work"},
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for duplicate tags, got nil")
	}
}

func TestImportanceWeightOrdering(t *testing.T) {
	if !(ImportanceHigh.Weight() < ImportanceNormal.Weight() && ImportanceNormal.Weight() < ImportanceLow.Weight()) {
		t.Fatalf("unexpected weights: high=%d normal=%d low=%d",
			ImportanceHigh.Weight(), ImportanceNormal.Weight(), ImportanceLow.Weight())
	}
}

func TestTaskCloneIsIndependent(t *testing.T) {
	at := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "task-1", Title: "Original", Importance: ImportanceNormal, ScheduledAt: &at, Tags: []string{"a"}}
	clone := task.Clone()
	clone.Tags[0] = "b"
	*clone.ScheduledAt = at.Add(time.Hour)
	if task.Tags[0] != "a" {
		t.Fatalf("clone shares tag slice: %v", task.Tags)
	}
	if !task.ScheduledAt.Equal(at) {
		t.Fatalf("clone shares schedule pointer: %v", task.ScheduledAt)
	}
}
