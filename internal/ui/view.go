package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"daylist/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const helpMarkdown = `# daylist

Quick add understands plain English:

- ` + "`Call mom tomorrow !high`" + ` schedules for tomorrow at high importance
- ` + "`urgent`" + `, ` + "`high`" + `, ` + "`!high`" + ` raise importance; ` + "`low`" + `, ` + "`!low`" + ` lower it
- ` + "`today`" + `, ` + "`tomorrow`" + ` and weekday names set the schedule

Deleted tasks go to the trash and stay there for seven days. The most
recent deletion can be undone for a few seconds.
`

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return renderMarkdown(helpMarkdown) + "\n" + footerStyle.Render("press "+m.keys.Help.Help().Key+" to close help")
	}

	var body string
	if m.screen == screenTrash {
		body = m.renderTrash()
	} else {
		body = m.renderTasks()
	}

	status := ""
	if m.status.Text != "" {
		if m.status.IsError {
			status = errorStyle.Render(m.status.Text)
		} else {
			status = statusStyle.Render(m.status.Text)
		}
	}

	lines := []string{body}
	if status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, footerStyle.Render(m.helpModel.View(m.keys)))
	return strings.Join(lines, "\n")
}

func (m Model) renderTasks() string {
	header := fmt.Sprintf("daylist | sort: %s", m.store.Mode())
	if m.search != "" {
		header += fmt.Sprintf(" | filter: %q", m.search)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if m.adding {
		b.WriteString("add: " + m.quickAdd.View() + "\n")
	}
	if m.searching {
		b.WriteString("search: " + m.searchBox.View() + "\n")
	}

	tasks, _ := m.visible()
	if len(tasks) == 0 {
		b.WriteString(footerStyle.Render("no tasks — press " + m.keys.Add.Help().Key + " to add one"))
		return b.String()
	}
	now := m.now()
	for i, t := range tasks {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + m.renderTaskLine(t, now) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTaskLine(t model.Task, now time.Time) string {
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}
	line := check + " " + t.Title

	switch t.Importance {
	case model.ImportanceHigh:
		line += " " + highStyle.Render("!!")
	case model.ImportanceLow:
		line += " " + footerStyle.Render("~")
	}
	if t.ScheduledAt != nil {
		stamp := t.ScheduledAt.Format("Mon Jan 2 15:04")
		if !t.Done && t.ScheduledAt.Before(now) {
			line += " " + overdueStyle.Render("overdue "+stamp)
		} else {
			line += " " + footerStyle.Render(stamp)
		}
	}
	for _, tag := range t.Tags {
		line += " " + tagStyle.Render("#"+tag)
	}
	if t.Done {
		return doneStyle.Render(line)
	}
	return line
}

func (m Model) renderTrash() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("trash"))
	b.WriteString("\n")

	entries := m.trash.Entries()
	if len(entries) == 0 {
		b.WriteString(footerStyle.Render("trash is empty"))
		return b.String()
	}
	now := m.now()
	for i, e := range entries {
		marker := "  "
		if i == m.trashCursor {
			marker = cursorStyle.Render("> ")
		}
		age := now.Sub(e.DeletedAt).Round(time.Minute)
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, e.Task.Title, footerStyle.Render("deleted "+age.String()+" ago")))
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("%s restore | %s empty | %s back",
		m.keys.Restore.Help().Key, m.keys.EmptyTrash.Help().Key, m.keys.Cancel.Help().Key)))
	return b.String()
}

func renderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return panelStyle.Render(strings.TrimSpace(out))
}
