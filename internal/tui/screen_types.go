package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TypesModel lists every entity type with the backend its records live in.
type TypesModel struct {
	lock      service.LockService
	decisions []models.RoutingDecision
	idx       int
	status    string
}

func NewTypesModel(router service.Router, lock service.LockService) *TypesModel {
	return &TypesModel{lock: lock, decisions: router.RoutingTable()}
}

func (m *TypesModel) Init() tea.Cmd {
	return nil
}

func (m *TypesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typesNoticeMsg:
		m.status = msg.text
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.decisions)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.enter):
			if len(m.decisions) == 0 {
				return m, nil
			}
			d := m.decisions[m.idx]
			return m, func() tea.Msg { return NavigateTo{Page: pageList, Payload: openTypeMsg{decision: d}} }
		case key.Matches(msg, keys.backup):
			return m, func() tea.Msg { return NavigateTo{Page: pageBackup} }
		case key.Matches(msg, keys.lock):
			m.status = ""
			m.lock.Lock()
			return m, nil
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *TypesModel) View() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("  %-22s │ %-17s │ %s\n", "Тип", "Хранилище", "Причина"))
	b.WriteString(strings.Repeat("─", 24))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 19))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 16))
	b.WriteString("\n")

	for i, d := range m.decisions {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-22s │ %-17s │ %s\n", cursor, d.EntityType, destinationName(d.Destination), d.Reason))
	}

	return renderPage("ТИПЫ ЗАПИСЕЙ", strings.TrimRight(b.String(), "\n"),
		"enter: открыть │ b: резервная копия │ l: заблокировать │ v: версия │ q: выход")
}
