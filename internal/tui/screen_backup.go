package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BackupModel exports the vault to the backup directory and restores it
// from an archive file.
type BackupModel struct {
	ctx    context.Context
	backup service.BackupService
	dir    string

	importing bool
	inputs    []textinput.Model
	focus     int

	busy   bool
	status string
	errMsg string
}

func NewBackupModel(ctx context.Context, backup service.BackupService, dir string) *BackupModel {
	path := textinput.New()
	path.Placeholder = "путь к файлу .osteobak"
	path.CharLimit = 1024
	path.Width = 60

	return &BackupModel{
		ctx:    ctx,
		backup: backup,
		dir:    dir,
		inputs: []textinput.Model{path, newSecretInput("PIN или пароль архива")},
	}
}

func (m *BackupModel) Init() tea.Cmd {
	m.importing = false
	m.status = ""
	m.errMsg = ""
	return nil
}

func (m *BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Резервная копия сохранена: " + msg.path
		return m, nil
	case importDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Восстановление не выполнено: " + humanizeError(msg.err)
			m.inputs[1].SetValue("")
			return m, nil
		}
		m.importing = false
		m.resetInputs()
		return m, func() tea.Msg {
			return NavigateTo{Page: pageTypes, Payload: typesNoticeMsg{text: "Хранилище восстановлено из резервной копии"}}
		}
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.importing {
			return m.updateImport(msg)
		}
		switch {
		case key.Matches(msg, keys.export):
			m.errMsg = ""
			m.status = ""
			m.busy = true
			return m, m.cmdExport()
		case key.Matches(msg, keys.restore):
			m.errMsg = ""
			m.status = ""
			m.importing = true
			m.resetInputs()
			return m, textinput.Blink
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageTypes, Payload: typesNoticeMsg{}} }
		}
	}
	return m, nil
}

func (m *BackupModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.importing = false
		m.errMsg = ""
		m.resetInputs()
		return m, nil
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	case key.Matches(msg, keys.enter):
		path := strings.TrimSpace(m.inputs[0].Value())
		credential := m.inputs[1].Value()
		if path == "" || credential == "" {
			m.errMsg = "Укажите файл и PIN/пароль архива"
			return m, nil
		}
		m.errMsg = ""
		m.busy = true
		return m, m.cmdImport(path, credential)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *BackupModel) View() string {
	var b strings.Builder

	if m.importing {
		b.WriteString("Текущее содержимое хранилища будет заменено.\n\n")
		b.WriteString("Файл       │ [")
		b.WriteString(m.inputs[0].View())
		b.WriteString("]\n")
		b.WriteString("PIN/пароль │ [")
		b.WriteString(m.inputs[1].View())
		b.WriteString("]\n")
	} else {
		b.WriteString("Каталог: ")
		b.WriteString(m.dir)
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n[Выполняется...]\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(renderError(m.errMsg))

	hotKeys := "e: экспорт │ i: восстановить │ esc: назад"
	if m.importing {
		hotKeys = "enter: восстановить │ tab: след. поле │ esc: отмена"
	}
	return renderPage("РЕЗЕРВНАЯ КОПИЯ", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *BackupModel) cmdExport() tea.Cmd {
	ctx, backup, dir := m.ctx, m.backup, m.dir
	return func() tea.Msg {
		path, err := backup.ExportToFile(ctx, dir)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *BackupModel) cmdImport(path, credential string) tea.Cmd {
	ctx, backup := m.ctx, m.backup
	return func() tea.Msg {
		return importDoneMsg{err: backup.ImportFromFile(ctx, path, credential)}
	}
}

func (m *BackupModel) resetInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}
