package tui

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// EditModel creates a record or replaces an existing one. A new record gets
// a generated id the user may overwrite.
type EditModel struct {
	ctx      context.Context
	entities service.EntityService

	entityType models.EntityType
	existing   bool

	idInput textinput.Model
	body    textarea.Model
	focus   int

	saving bool
	errMsg string
}

func NewEditModel(ctx context.Context, entities service.EntityService) *EditModel {
	id := textinput.New()
	id.Placeholder = "id"
	id.CharLimit = 128
	id.Width = 40

	body := textarea.New()
	body.Placeholder = `{"first_name": "..."}`
	body.SetWidth(70)
	body.SetHeight(12)
	body.CharLimit = 0

	return &EditModel{ctx: ctx, entities: entities, idInput: id, body: body}
}

func (m *EditModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editRecordMsg:
		m.entityType = msg.entityType
		m.existing = msg.id != ""
		m.saving = false
		m.errMsg = ""

		if m.existing {
			m.idInput.SetValue(msg.id)
			m.body.SetValue(prettyJSON(msg.record))
		} else {
			id := uuid.NewString()
			m.idInput.SetValue(id)
			if tmpl, ok := models.RecordTemplate(msg.entityType, id); ok {
				m.body.SetValue(prettyJSON(tmpl))
			} else {
				m.body.SetValue("{\n}")
			}
		}
		m.setFocus(1)
		return m, textarea.Blink
	case recordSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: pageList, Payload: reloadListMsg{status: "Запись сохранена"}}
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageList, Payload: reloadListMsg{}} }
		case key.Matches(msg, keys.tab):
			if !m.existing {
				m.setFocus(1 - m.focus)
			}
			return m, nil
		case key.Matches(msg, keys.save):
			return m, m.save()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.idInput, cmd = m.idInput.Update(msg)
	} else {
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m *EditModel) save() tea.Cmd {
	if m.saving {
		return nil
	}

	id := strings.TrimSpace(m.idInput.Value())
	if id == "" {
		m.errMsg = humanizeError(errEmptyID)
		return nil
	}
	raw := []byte(strings.TrimSpace(m.body.Value()))
	if !json.Valid(raw) {
		m.errMsg = humanizeError(errInvalidJSON)
		return nil
	}

	m.errMsg = ""
	m.saving = true
	ctx, entities, et := m.ctx, m.entities, m.entityType
	return func() tea.Msg {
		return recordSavedMsg{err: entities.Put(ctx, et, id, models.Record(raw))}
	}
}

func (m *EditModel) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.body.Blur()
		m.idInput.Focus()
		return
	}
	m.idInput.Blur()
	m.body.Focus()
}

func (m *EditModel) View() string {
	var b strings.Builder

	b.WriteString("ID │ [")
	b.WriteString(m.idInput.View())
	b.WriteString("]\n\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")

	if m.saving {
		b.WriteString("\n[Сохранение...]\n")
	}
	b.WriteString(renderError(m.errMsg))

	title := "НОВАЯ ЗАПИСЬ"
	if m.existing {
		title = "ИЗМЕНЕНИЕ ЗАПИСИ"
	}
	return renderPage(title+" / "+strings.ToUpper(m.entityType.String()), strings.TrimRight(b.String(), "\n"),
		"ctrl+s: сохранить │ tab: след. поле │ esc: отмена")
}
