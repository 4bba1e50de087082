package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailModel shows one record as indented JSON.
type DetailModel struct {
	ctx      context.Context
	entities service.EntityService
	copy     func(string) error

	entityType models.EntityType
	id         string
	record     models.Record
	body       string

	loading bool
	status  string
	errMsg  string
}

func NewDetailModel(ctx context.Context, entities service.EntityService) *DetailModel {
	return &DetailModel{ctx: ctx, entities: entities, copy: clipboard.WriteAll}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openRecordMsg:
		m.entityType = msg.entityType
		m.id = msg.id
		m.record = nil
		m.body = ""
		m.status = ""
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoad()
	case recordLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.record = msg.record
		m.body = prettyJSON(msg.record)
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			if m.record == nil {
				return m, nil
			}
			if err := m.copy(m.body); err != nil {
				m.errMsg = "Не удалось скопировать: " + err.Error()
				return m, nil
			}
			m.status = "Скопировано в буфер обмена"
		case key.Matches(msg, keys.edit):
			if m.record == nil {
				return m, nil
			}
			payload := editRecordMsg{entityType: m.entityType, id: m.id, record: m.record}
			return m, func() tea.Msg { return NavigateTo{Page: pageEdit, Payload: payload} }
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageList, Payload: reloadListMsg{}} }
		}
	}
	return m, nil
}

func (m *DetailModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Загрузка...\n")
	case m.errMsg == "" && m.record == nil:
		b.WriteString("Запись не найдена\n")
	default:
		b.WriteString(m.body)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(renderError(m.errMsg))

	title := strings.ToUpper(m.entityType.String()) + " / " + m.id
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "c: копировать │ e: изменить │ esc: назад")
}

func (m *DetailModel) cmdLoad() tea.Cmd {
	ctx, entities, et, id := m.ctx, m.entities, m.entityType, m.id
	return func() tea.Msg {
		record, err := entities.Get(ctx, et, id)
		return recordLoadedMsg{record: record, err: err}
	}
}

func prettyJSON(r models.Record) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r, "", "  "); err != nil {
		return string(r)
	}
	return buf.String()
}
