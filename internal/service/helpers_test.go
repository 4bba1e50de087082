package service

import (
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
)

// testKDF keeps Argon2id fast enough for unit tests.
var testKDF = models.KDFParams{Time: 1, Memory: 64, Threads: 1, KeyLen: crypto.KeySize}

const (
	testPIN      = "1234"
	testPassword = "correct horse battery"
)

var testRecord = models.Record(`{"name":"Jane Doe","birth_date":"1980-04-12"}`)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	repo     store.VaultRepository
	keyChain crypto.KeyChainService
	clock    *fakeClock
	lock     LockService
	vault    VaultStore
	backup   BackupService
}

func newTestEnv(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, store.NewMemoryVaultRepository(), timeout)
}

func newTestEnvWithRepo(t *testing.T, repo store.VaultRepository, timeout time.Duration) *testEnv {
	t.Helper()

	clock := newFakeClock()
	keyChain := crypto.NewKeyChainServiceWithParams(testKDF)
	lock := NewLockService(repo, keyChain, LockOptions{InactivityTimeout: timeout, Clock: clock}, logger.Nop())

	return &testEnv{
		repo:     repo,
		keyChain: keyChain,
		clock:    clock,
		lock:     lock,
		vault:    NewVaultStore(repo, keyChain, lock, clock, logger.Nop()),
		backup:   NewBackupService(repo, keyChain, lock, clock, logger.Nop()),
	}
}
