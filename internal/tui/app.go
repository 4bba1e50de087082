package tui

import (
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) returns to the unlock page whenever the vault locks
// 5) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	lock   service.LockService
	events <-chan models.LockEvent

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage. Lock events read
// from events drive the page switch on lock.
func NewRootModel(pages map[string]tea.Model, startPage string, lock service.LockService, events <-chan models.LockEvent, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[startPage],
		lock:      lock,
		events:    events,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	var cmd tea.Cmd
	if r.current != nil {
		cmd = r.current.Init()
	}
	return tea.Batch(cmd, waitLockEvent(r.events))
}

func waitLockEvent(events <-chan models.LockEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return lockEventMsg{event: e}
	}
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		if r.lock != nil && r.lock.IsUnlocked() {
			r.lock.Touch()
		}

		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.isTypesPage() {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	if e, ok := msg.(lockEventMsg); ok {
		next := waitLockEvent(r.events)
		if e.event.State != models.Locked || r.isUnlockPage() {
			return r, next
		}
		nav := NavigateTo{Page: pageUnlock, Payload: lockNoticeMsg{text: lockNotice(e.event.Reason)}}
		return r, tea.Batch(next, func() tea.Msg { return nav })
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		next, exists := r.pages[nav.Page]
		if !exists {
			return r, nil
		}

		r.showBuildInfo = false
		r.current = next

		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}

	var banner string
	if r.lock != nil {
		banner = renderBanner(r.lock.State())
	}
	if r.current == nil {
		return banner + renderPage("OSTEOVAULT", "", "")
	}
	return banner + r.current.View()
}

func (r RootModel) isTypesPage() bool {
	_, ok := r.current.(*TypesModel)
	return ok
}

func (r RootModel) isUnlockPage() bool {
	_, ok := r.current.(*UnlockModel)
	return ok
}

func lockNotice(reason models.LockReason) string {
	switch reason {
	case models.ReasonInactivity:
		return "Хранилище заблокировано из-за бездействия"
	case models.ReasonLogout:
		return "Сеанс завершён"
	default:
		return "Хранилище заблокировано"
	}
}
