package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ListModel shows the ids stored for one entity type.
type ListModel struct {
	ctx      context.Context
	entities service.EntityService

	decision models.RoutingDecision
	ids      []string
	idx      int

	loading       bool
	spinner       spinner.Model
	confirmDelete bool
	status        string
	errMsg        string
}

func NewListModel(ctx context.Context, entities service.EntityService) *ListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &ListModel{ctx: ctx, entities: entities, spinner: s}
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) current() (string, bool) {
	if len(m.ids) == 0 || m.idx < 0 || m.idx >= len(m.ids) {
		return "", false
	}
	return m.ids[m.idx], true
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openTypeMsg:
		m.decision = msg.decision
		m.ids = nil
		m.idx = 0
		m.status = ""
		return m, m.startLoad()
	case reloadListMsg:
		m.status = msg.status
		return m, m.startLoad()
	case idsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.ids = msg.ids
		if m.idx >= len(m.ids) {
			m.idx = max(len(m.ids)-1, 0)
		}
		return m, nil
	case recordDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %s", humanizeError(msg.err))
			return m, nil
		}
		m.status = "Запись " + msg.id + " удалена"
		return m, m.startLoad()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *ListModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirmDelete = false
			if id, ok := m.current(); ok {
				return m, m.cmdDelete(id)
			}
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.ids)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if id, ok := m.current(); ok {
			et := m.decision.EntityType
			return m, func() tea.Msg {
				return NavigateTo{Page: pageDetail, Payload: openRecordMsg{entityType: et, id: id}}
			}
		}
	case key.Matches(msg, keys.newItem):
		et := m.decision.EntityType
		return m, func() tea.Msg { return NavigateTo{Page: pageEdit, Payload: editRecordMsg{entityType: et}} }
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirmDelete = true
		}
	case key.Matches(msg, keys.reload):
		return m, m.startLoad()
	case key.Matches(msg, keys.esc):
		return m, func() tea.Msg { return NavigateTo{Page: pageTypes, Payload: typesNoticeMsg{}} }
	}
	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString("Хранилище: ")
	b.WriteString(destinationName(m.decision.Destination))
	if m.decision.Ephemeral {
		b.WriteString(" (демо)")
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Загрузка...\n")
	case len(m.ids) == 0:
		b.WriteString("Нет записей\n")
	default:
		for i, id := range m.ids {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(cursor)
			b.WriteString(fitText(id, 60))
			b.WriteString("\n")
		}
	}

	if m.confirmDelete {
		id, _ := m.current()
		b.WriteString("\n")
		b.WriteString(overlayBoxStyle.Render("Удалить \"" + id + "\"?\n\ny да    n нет"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage(strings.ToUpper(m.decision.EntityType.String()), strings.TrimRight(b.String(), "\n"),
		"enter: открыть │ n: новая │ d: удалить │ r: обновить │ esc: назад")
}

func (m *ListModel) startLoad() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *ListModel) cmdLoad() tea.Cmd {
	ctx, entities, et := m.ctx, m.entities, m.decision.EntityType
	return func() tea.Msg {
		ids, err := entities.List(ctx, et)
		return idsLoadedMsg{ids: ids, err: err}
	}
}

func (m *ListModel) cmdDelete(id string) tea.Cmd {
	ctx, entities, et := m.ctx, m.entities, m.decision.EntityType
	return func() tea.Msg {
		return recordDeletedMsg{id: id, err: entities.Delete(ctx, et, id)}
	}
}
