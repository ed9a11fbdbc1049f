package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"daylist/internal/config"
	"daylist/internal/engine"
	"daylist/internal/model"
)

type screen string

const (
	screenTasks screen = "tasks"
	screenTrash screen = "trash"
)

type statusBar struct {
	Text    string
	IsError bool
}

// Model is the bubbletea shell around the engine. It never mutates task
// state directly; every change goes through the store or the trash and the
// view re-reads engine output.
type Model struct {
	store *engine.Store
	trash *engine.Trash

	keys      keyMap
	helpModel help.Model
	quickAdd  textinput.Model
	searchBox textinput.Model

	screen      screen
	cursor      int
	trashCursor int
	adding      bool
	searching   bool
	search      string
	showHelp    bool
	status      statusBar
	quitting    bool

	undoWindow  time.Duration
	trashMaxAge time.Duration
	now         func() time.Time
}

func New(store *engine.Store, trash *engine.Trash, cfg config.Config) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "Call mom tomorrow !high"
	quickAdd.CharLimit = 200
	quickAdd.Width = 48

	searchBox := textinput.New()
	searchBox.Placeholder = "search"
	searchBox.CharLimit = 100
	searchBox.Width = 32

	window := time.Duration(cfg.UndoSeconds) * time.Second
	if window <= 0 {
		window = engine.DefaultUndoWindow
	}
	maxAge := time.Duration(cfg.TrashMaxAgeDays) * 24 * time.Hour
	if maxAge <= 0 {
		maxAge = engine.DefaultTrashMaxAge
	}
	return Model{
		store:       store,
		trash:       trash,
		keys:        newKeyMap(cfg.Keys),
		helpModel:   help.New(),
		quickAdd:    quickAdd,
		searchBox:   searchBox,
		screen:      screenTasks,
		undoWindow:  window,
		trashMaxAge: maxAge,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// visible returns the tasks to render plus their global indices, after the
// current search filter.
func (m Model) visible() ([]model.Task, []int) {
	tasks := m.store.Tasks()
	indices := engine.Filter(tasks, engine.Criteria{Search: m.search, Now: m.now()})
	out := make([]model.Task, len(indices))
	for i, gi := range indices {
		out[i] = tasks[gi]
	}
	return out, indices
}

func (m Model) cursorTask() (model.Task, bool) {
	tasks, _ := m.visible()
	if len(tasks) == 0 || m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	tasks, _ := m.visible()
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	entries := m.trash.Entries()
	if m.trashCursor >= len(entries) {
		m.trashCursor = len(entries) - 1
	}
	if m.trashCursor < 0 {
		m.trashCursor = 0
	}
}

// openListIndex maps a task id to its position within the open subsequence,
// the coordinate space ReorderEngine moves operate in.
func (m Model) openListIndex(id string) (int, bool) {
	pos := 0
	for _, t := range m.store.Tasks() {
		if t.Done {
			continue
		}
		if t.ID == id {
			return pos, true
		}
		pos++
	}
	return 0, false
}
