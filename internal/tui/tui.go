package tui

import (
	"context"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	tea "github.com/charmbracelet/bubbletea"
)

// lockEventBuffer bounds the lock events queued for the UI. Events beyond it
// are dropped; only the latest state matters to the router.
const lockEventBuffer = 8

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	backupDir string

	logger *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, backupDir string, logger *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, backupDir: backupDir, logger: logger}
}

// NewRoot builds the page set of the client and subscribes the router to
// lock transitions.
func (t *TUI) NewRoot(ctx context.Context) RootModel {
	events := make(chan models.LockEvent, lockEventBuffer)
	t.services.Lock.Subscribe(func(e models.LockEvent) {
		select {
		case events <- e:
		default:
			t.logger.Warn().Str("func", "TUI.NewRoot").Str("reason", string(e.Reason)).Msg("lock event dropped")
		}
	})

	pages := map[string]tea.Model{
		pageUnlock: NewUnlockModel(ctx, t.services.Lock),
		pageTypes:  NewTypesModel(t.services.Router, t.services.Lock),
		pageList:   NewListModel(ctx, t.services.Entities),
		pageDetail: NewDetailModel(ctx, t.services.Entities),
		pageEdit:   NewEditModel(ctx, t.services.Entities),
		pageBackup: NewBackupModel(ctx, t.services.Backup, t.backupDir),
	}
	return NewRootModel(pages, pageUnlock, t.services.Lock, events, t.buildInfo)
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	finalModel, err := tea.NewProgram(t.NewRoot(ctx), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
