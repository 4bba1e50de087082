package tui

import "github.com/MKhiriev/osteo-vault/models"

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page as its first message instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

const (
	pageUnlock = "unlock"
	pageTypes  = "types"
	pageList   = "list"
	pageDetail = "detail"
	pageEdit   = "edit"
	pageBackup = "backup"
)

type lockEventMsg struct {
	event models.LockEvent
}

type lockNoticeMsg struct {
	text string
}

type configuredMsg struct {
	configured bool
	err        error
}

type unlockResultMsg struct {
	ok  bool
	err error
}

type typesNoticeMsg struct {
	text string
}

type openTypeMsg struct {
	decision models.RoutingDecision
}

type reloadListMsg struct {
	status string
}

type idsLoadedMsg struct {
	ids []string
	err error
}

type recordDeletedMsg struct {
	id  string
	err error
}

type openRecordMsg struct {
	entityType models.EntityType
	id         string
}

type recordLoadedMsg struct {
	record models.Record
	err    error
}

type editRecordMsg struct {
	entityType models.EntityType
	id         string
	record     models.Record
}

type recordSavedMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

type importDoneMsg struct {
	err error
}

type clearStatusMsg struct{}
