// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// UnlockModel asks for the PIN or password. On a fresh install it asks for
// the credential twice and creates the vault instead.
type UnlockModel struct {
	ctx  context.Context
	lock service.LockService

	checked    bool
	configured bool

	inputs     []textinput.Model
	focus      int
	submitting bool
	notice     string
	errMsg     string
}

func NewUnlockModel(ctx context.Context, lock service.LockService) *UnlockModel {
	credential := newSecretInput("PIN или пароль")
	credential.Focus()
	confirm := newSecretInput("повторите")

	return &UnlockModel{
		ctx:    ctx,
		lock:   lock,
		inputs: []textinput.Model{credential, confirm},
	}
}

func newSecretInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

func (m *UnlockModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdCheckConfigured())
}

func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case configuredMsg:
		m.checked = true
		m.configured = msg.configured
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil
	case lockNoticeMsg:
		m.notice = msg.text
		m.reset()
		return m, tea.Batch(textinput.Blink, m.cmdCheckConfigured())
	case unlockResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		if !msg.ok {
			m.errMsg = humanizeError(service.ErrWrongCredential)
			m.inputs[0].SetValue("")
			return m, nil
		}
		m.reset()
		m.notice = ""
		return m, func() tea.Msg { return NavigateTo{Page: pageTypes, Payload: typesNoticeMsg{}} }
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			if !m.configured {
				m.toggleFocus()
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *UnlockModel) submit() tea.Cmd {
	if m.submitting || !m.checked {
		return nil
	}

	credential := m.inputs[0].Value()
	if credential == "" {
		m.errMsg = "Введите PIN или пароль"
		return nil
	}
	if !m.configured && credential != m.inputs[1].Value() {
		m.errMsg = humanizeError(errCredentialMismatch)
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	if m.configured {
		return m.cmdUnlock(credential)
	}
	return m.cmdConfigure(credential)
}

func (m *UnlockModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}

	title := "РАЗБЛОКИРОВКА"
	switch {
	case !m.checked:
		b.WriteString("Проверка хранилища...\n")
	case m.configured:
		b.WriteString("PIN/пароль │ [")
		b.WriteString(m.inputs[0].View())
		b.WriteString("]\n")
	default:
		title = "СОЗДАНИЕ ХРАНИЛИЩА"
		b.WriteString("PIN: 4-8 цифр или пароль от 8 символов\n\n")
		b.WriteString("PIN/пароль │ [")
		b.WriteString(m.inputs[0].View())
		b.WriteString("]\n")
		b.WriteString("Повтор     │ [")
		b.WriteString(m.inputs[1].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Проверка...]\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "enter: подтвердить │ tab: след. поле")
}

func (m *UnlockModel) cmdCheckConfigured() tea.Cmd {
	ctx, lock := m.ctx, m.lock
	return func() tea.Msg {
		ok, err := lock.Configured(ctx)
		return configuredMsg{configured: ok, err: err}
	}
}

func (m *UnlockModel) cmdUnlock(credential string) tea.Cmd {
	ctx, lock := m.ctx, m.lock
	return func() tea.Msg {
		ok, err := lock.Unlock(ctx, credential)
		return unlockResultMsg{ok: ok, err: err}
	}
}

func (m *UnlockModel) cmdConfigure(credential string) tea.Cmd {
	ctx, lock := m.ctx, m.lock
	return func() tea.Msg {
		if err := lock.Configure(ctx, credential); err != nil {
			return unlockResultMsg{err: err}
		}
		return unlockResultMsg{ok: true}
	}
}

func (m *UnlockModel) toggleFocus() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *UnlockModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.submitting = false
	m.errMsg = ""
}
