package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"daylist/internal/engine"
	"daylist/internal/model"
	"daylist/internal/parse"

	"github.com/google/uuid"
)

type undoWindowClosedMsg struct{}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case undoWindowClosedMsg:
		if _, armed := m.trash.UndoDeadline(); !armed && m.status.Text != "" {
			m.status = statusBar{}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.handleQuickAddKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.TrashView):
		if m.screen == screenTrash {
			m.screen = screenTasks
		} else {
			m.screen = screenTrash
		}
		m.clampCursor()
		return m, nil
	}

	if m.screen == screenTrash {
		return m.handleTrashKey(msg)
	}
	return m.handleTasksKey(msg)
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if tasks, _ := m.visible(); m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.quickAdd.SetValue("")
		m.quickAdd.Focus()
		m.status = statusBar{Text: "quick add: type a task, enter to save"}
	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.cursorTask(); ok {
			m.store.ToggleDone(task.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.cursorTask(); ok {
			if m.trash.Delete(task.ID) {
				m.clampCursor()
				m.status = statusBar{Text: fmt.Sprintf("deleted %q — %s to undo", task.Title, m.keys.Undo.Help().Key)}
				return m, tea.Tick(m.undoWindow+100*time.Millisecond, func(time.Time) tea.Msg {
					return undoWindowClosedMsg{}
				})
			}
		}
	case key.Matches(msg, m.keys.Undo):
		if m.trash.Undo() {
			m.status = statusBar{Text: "deletion undone"}
		} else {
			m.status = statusBar{Text: "nothing to undo"}
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.MoveUp):
		m.moveCursorTask(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveCursorTask(+1)
	case key.Matches(msg, m.keys.CycleSort):
		m.store.SetMode(nextSortMode(m.store.Mode()))
		m.status = statusBar{Text: fmt.Sprintf("sort: %s", m.store.Mode())}
		m.clampCursor()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchBox.SetValue(m.search)
		m.searchBox.Focus()
	case key.Matches(msg, m.keys.Cancel):
		if m.search != "" {
			m.search = ""
			m.clampCursor()
		}
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.quickAdd.Blur()
		m.status = statusBar{}
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.addTask(m.quickAdd.Value())
		m.adding = false
		m.quickAdd.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAdd, cmd = m.quickAdd.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search = ""
		m.searchBox.Blur()
		m.clampCursor()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.searching = false
		m.search = m.searchBox.Value()
		m.searchBox.Blur()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)
	m.search = m.searchBox.Value()
	return m, cmd
}

func (m Model) handleTrashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.trash.Entries()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.trashCursor > 0 {
			m.trashCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.trashCursor < len(entries)-1 {
			m.trashCursor++
		}
	case key.Matches(msg, m.keys.Restore):
		if m.trashCursor < len(entries) {
			entry := entries[m.trashCursor]
			if m.trash.RestoreEntry(entry.ID) {
				m.status = statusBar{Text: fmt.Sprintf("restored %q", entry.Task.Title)}
			}
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Delete):
		removed := m.trash.PurgeExpired(m.trashMaxAge)
		m.status = statusBar{Text: fmt.Sprintf("purged %d expired entries", removed)}
		m.clampCursor()
	case key.Matches(msg, m.keys.EmptyTrash):
		m.trash.EmptyAll()
		m.trashCursor = 0
		m.status = statusBar{Text: "trash emptied"}
	case key.Matches(msg, m.keys.Cancel):
		m.screen = screenTasks
	}
	return m, nil
}

func (m *Model) addTask(input string) {
	draft := parse.Parse(input, m.now())
	if draft.Title == "" {
		m.status = statusBar{Text: "nothing to add"}
		return
	}
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		ScheduledAt: draft.When,
		Importance:  draft.Importance,
	}
	m.store.Insert(task, true)
	m.cursor = 0
	m.status = statusBar{Text: fmt.Sprintf("added %q", draft.Title)}
}

// moveCursorTask shifts the task under the cursor one slot within the open
// list. Only meaningful in manual mode with no active filter; the engine
// rejects the rest.
func (m *Model) moveCursorTask(delta int) {
	if m.search != "" || m.store.Mode() != engine.SortManual {
		m.status = statusBar{Text: "manual move needs manual sort and no filter", IsError: true}
		return
	}
	task, ok := m.cursorTask()
	if !ok || task.Done {
		return
	}
	pos, ok := m.openListIndex(task.ID)
	if !ok {
		return
	}
	dest := pos + delta
	if delta < 0 && pos == 0 {
		return
	}
	m.store.Move([]int{pos}, dest)
	// The engine clamps moves past either end, so follow the task to wherever
	// it actually landed instead of trusting the delta.
	tasks, _ := m.visible()
	for i, t := range tasks {
		if t.ID == task.ID {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
}

func nextSortMode(mode engine.SortMode) engine.SortMode {
	switch mode {
	case engine.SortManual:
		return engine.SortDate
	case engine.SortDate:
		return engine.SortImportance
	default:
		return engine.SortManual
	}
}
