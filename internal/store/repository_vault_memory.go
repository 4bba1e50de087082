package store

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/osteo-vault/models"
)

type entryKey struct {
	entityType models.EntityType
	id         string
}

// memoryVaultRepository is the non-durable [VaultRepository] used when the
// vault file cannot be opened, and in tests. Its content is lost when the
// process exits.
type memoryVaultRepository struct {
	mu      sync.RWMutex
	meta    *models.VaultMeta
	entries map[entryKey]models.VaultEntry
}

// NewMemoryVaultRepository returns an empty in-memory [VaultRepository].
func NewMemoryVaultRepository() VaultRepository {
	return &memoryVaultRepository{entries: make(map[entryKey]models.VaultEntry)}
}

func cloneEntry(e models.VaultEntry) models.VaultEntry {
	e.Ciphertext = bytes.Clone(e.Ciphertext)
	e.Nonce = bytes.Clone(e.Nonce)
	return e
}

func cloneMeta(m models.VaultMeta) models.VaultMeta {
	m.Salt = bytes.Clone(m.Salt)
	m.CanaryCiphertext = bytes.Clone(m.CanaryCiphertext)
	m.CanaryNonce = bytes.Clone(m.CanaryNonce)
	return m
}

func (m *memoryVaultRepository) GetMeta(ctx context.Context) (*models.VaultMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.meta == nil {
		return nil, ErrMetaNotFound
	}
	meta := cloneMeta(*m.meta)
	return &meta, nil
}

func (m *memoryVaultRepository) SaveMeta(ctx context.Context, meta models.VaultMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := cloneMeta(meta)
	m.meta = &c
	return nil
}

func (m *memoryVaultRepository) PutEntry(ctx context.Context, entry models.VaultEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey{entry.EntityType, entry.ID}
	if old, ok := m.entries[key]; ok {
		entry.CreatedAt = old.CreatedAt
	}
	m.entries[key] = cloneEntry(entry)
	return nil
}

func (m *memoryVaultRepository) GetEntry(ctx context.Context, entityType models.EntityType, id string) (*models.VaultEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[entryKey{entityType, id}]
	if !ok {
		return nil, ErrEntryNotFound
	}
	e = cloneEntry(e)
	return &e, nil
}

func (m *memoryVaultRepository) DeleteEntry(ctx context.Context, entityType models.EntityType, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, entryKey{entityType, id})
	return nil
}

func (m *memoryVaultRepository) ListIDs(ctx context.Context, entityType models.EntityType) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0)
	for k := range m.entries {
		if k.entityType == entityType {
			ids = append(ids, k.id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *memoryVaultRepository) AllEntries(ctx context.Context) ([]models.VaultEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]models.VaultEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, cloneEntry(e))
	}
	slices.SortFunc(entries, func(a, b models.VaultEntry) int {
		return cmp.Or(cmp.Compare(a.EntityType, b.EntityType), cmp.Compare(a.ID, b.ID))
	})
	return entries, nil
}

func (m *memoryVaultRepository) ReplaceAll(ctx context.Context, meta models.VaultMeta, entries []models.VaultEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[entryKey]models.VaultEntry, len(entries))
	for _, e := range entries {
		next[entryKey{e.EntityType, e.ID}] = cloneEntry(e)
	}
	c := cloneMeta(meta)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta = &c
	m.entries = next
	return nil
}

func (m *memoryVaultRepository) Close() error {
	return nil
}
