package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededEnv returns an unlocked vault holding two patients and an invoice.
func seededEnv(t *testing.T, credential string) *testEnv {
	t.Helper()
	env := newTestEnv(t, 0)
	ctx := context.Background()

	require.NoError(t, env.lock.Configure(ctx, credential))
	require.NoError(t, env.vault.Put(ctx, models.Patients, "p1", testRecord))
	require.NoError(t, env.vault.Put(ctx, models.Patients, "p2", models.Record(`{"name":"John Roe"}`)))
	require.NoError(t, env.vault.Put(ctx, models.Invoices, "i1", models.Record(`{"amount":"45.00"}`)))
	return env
}

func cloneArchiveEntries(a *models.BackupArchive) {
	entries := make([]models.VaultEntry, len(a.Entries))
	for i, e := range a.Entries {
		e.Ciphertext = bytes.Clone(e.Ciphertext)
		e.Nonce = bytes.Clone(e.Nonce)
		entries[i] = e
	}
	a.Entries = entries
}

func assertVaultHolds(t *testing.T, env *testEnv, entityType models.EntityType, ids ...string) {
	t.Helper()
	got, err := env.vault.List(context.Background(), entityType)
	require.NoError(t, err)
	if len(ids) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, ids, got)
}

func TestBackupService_Export(t *testing.T) {
	env := seededEnv(t, testPIN)
	ctx := context.Background()

	archive, err := env.backup.Export(ctx)
	require.NoError(t, err)

	meta, err := env.repo.GetMeta(ctx)
	require.NoError(t, err)
	stored, err := env.repo.AllEntries(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.BackupMagic, archive.Magic)
	assert.Equal(t, models.VaultFormatVersion, archive.FormatVersion)
	assert.Equal(t, meta.Salt, archive.Salt)
	assert.Equal(t, meta.KDF, archive.KDF)
	assert.Equal(t, meta.CanaryCiphertext, archive.Canary)
	assert.Equal(t, stored, archive.Entries, "entries are exported as stored ciphertext")
	assert.Equal(t, store.ArchiveChecksum(stored), archive.Checksum)
	assert.Equal(t, env.clock.Now(), archive.ExportedAt)
	require.NoError(t, store.VerifyArchive(archive))
}

func TestBackupService_ExportRequiresUnlock(t *testing.T) {
	env := seededEnv(t, testPIN)
	env.lock.Lock()

	_, err := env.backup.Export(context.Background())
	assert.ErrorIs(t, err, ErrVaultLocked)

	var buf bytes.Buffer
	err = env.backup.WriteArchive(context.Background(), &buf)
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.Zero(t, buf.Len())
}

func TestBackupService_RoundTripIntoFreshVault(t *testing.T) {
	src := seededEnv(t, testPIN)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, src.backup.WriteArchive(ctx, &buf))

	dst := newTestEnv(t, 0)
	require.NoError(t, dst.backup.ImportFromReader(ctx, &buf, testPIN))
	require.True(t, dst.lock.IsUnlocked())

	assertVaultHolds(t, dst, models.Patients, "p1", "p2")
	got, err := dst.vault.Get(ctx, models.Patients, "p1")
	require.NoError(t, err)
	assert.JSONEq(t, string(testRecord), string(got))

	dst.lock.Lock()
	ok, err := dst.lock.Unlock(ctx, testPIN)
	require.NoError(t, err)
	assert.True(t, ok, "restored vault opens with the archive credential")
}

func TestBackupService_ImportReplacesContent(t *testing.T) {
	src := seededEnv(t, testPassword)
	ctx := context.Background()
	archive, err := src.backup.Export(ctx)
	require.NoError(t, err)

	dst := newTestEnv(t, 0)
	require.NoError(t, dst.lock.Configure(ctx, testPIN))
	require.NoError(t, dst.vault.Put(ctx, models.Consultations, "c1", models.Record(`{"notes":"lumbar"}`)))

	require.NoError(t, dst.backup.Import(ctx, archive, testPassword))

	assertVaultHolds(t, dst, models.Consultations)
	assertVaultHolds(t, dst, models.Patients, "p1", "p2")

	dst.lock.Lock()
	ok, err := dst.lock.Unlock(ctx, testPIN)
	require.NoError(t, err)
	assert.False(t, ok, "old credential no longer opens the vault")
	ok, err = dst.lock.Unlock(ctx, testPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackupService_ImportFailuresLeaveVaultUnchanged(t *testing.T) {
	src := seededEnv(t, testPassword)
	ctx := context.Background()

	var encoded bytes.Buffer
	require.NoError(t, src.backup.WriteArchive(ctx, &encoded))

	tests := []struct {
		name       string
		run        func(b BackupService) error
		credential string
		wantErr    error
	}{
		{
			name: "truncated archive",
			run: func(b BackupService) error {
				half := encoded.Bytes()[:encoded.Len()/2]
				return b.ImportFromReader(ctx, bytes.NewReader(half), testPassword)
			},
			wantErr: store.ErrArchiveMalformed,
		},
		{
			name: "not an archive",
			run: func(b BackupService) error {
				return b.ImportFromReader(ctx, strings.NewReader("patients,p1,Jane Doe\n"), testPassword)
			},
			wantErr: store.ErrArchiveMalformed,
		},
		{
			name: "wrong credential",
			run: func(b BackupService) error {
				return b.ImportFromReader(ctx, bytes.NewReader(encoded.Bytes()), "wrong horse battery")
			},
			wantErr: ErrWrongCredential,
		},
		{
			name: "weak credential",
			run: func(b BackupService) error {
				return b.ImportFromReader(ctx, bytes.NewReader(encoded.Bytes()), "12")
			},
			wantErr: ErrWeakCredential,
		},
		{
			name: "checksum mismatch",
			run: func(b BackupService) error {
				archive, err := src.backup.Export(ctx)
				require.NoError(t, err)
				cloneArchiveEntries(archive)
				archive.Entries[0].Ciphertext[0] ^= 0x01
				return b.Import(ctx, archive, testPassword)
			},
			wantErr: store.ErrArchiveChecksum,
		},
		{
			name: "corrupted entry with recomputed checksum",
			run: func(b BackupService) error {
				archive, err := src.backup.Export(ctx)
				require.NoError(t, err)
				cloneArchiveEntries(archive)
				archive.Entries[len(archive.Entries)-1].Ciphertext[0] ^= 0x01
				archive.Checksum = store.ArchiveChecksum(archive.Entries)
				return b.Import(ctx, archive, testPassword)
			},
			wantErr: ErrIntegrity,
		},
		{
			name: "unsupported version",
			run: func(b BackupService) error {
				archive, err := src.backup.Export(ctx)
				require.NoError(t, err)
				archive.FormatVersion = models.VaultFormatVersion + 1
				return b.Import(ctx, archive, testPassword)
			},
			wantErr: store.ErrArchiveVersion,
		},
		{
			name: "unbounded kdf time",
			run: func(b BackupService) error {
				archive, err := src.backup.Export(ctx)
				require.NoError(t, err)
				archive.KDF.Time = 1 << 31
				return b.Import(ctx, archive, testPassword)
			},
			wantErr: crypto.ErrDerivation,
		},
		{
			name: "kdf memory above ceiling",
			run: func(b BackupService) error {
				archive, err := src.backup.Export(ctx)
				require.NoError(t, err)
				archive.KDF.Memory = 4 * 1024 * 1024
				return b.Import(ctx, archive, testPassword)
			},
			wantErr: crypto.ErrDerivation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := seededEnv(t, testPIN)
			require.NoError(t, dst.vault.Put(ctx, models.Consultations, "c1", models.Record(`{"notes":"cervical"}`)))

			err := tt.run(dst.backup)
			require.ErrorIs(t, err, ErrRestore)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.True(t, dst.lock.IsUnlocked())
			assertVaultHolds(t, dst, models.Consultations, "c1")
			assertVaultHolds(t, dst, models.Patients, "p1", "p2")

			dst.lock.Lock()
			ok, err := dst.lock.Unlock(ctx, testPIN)
			require.NoError(t, err)
			assert.True(t, ok, "original credential still opens the vault")
		})
	}
}

func TestBackupService_ImportIntoLockedVault(t *testing.T) {
	src := seededEnv(t, testPIN)
	ctx := context.Background()
	archive, err := src.backup.Export(ctx)
	require.NoError(t, err)

	dst := seededEnv(t, testPIN)
	dst.lock.Lock()

	err = dst.backup.Import(ctx, archive, testPIN)
	assert.ErrorIs(t, err, ErrRestore)
	assert.ErrorIs(t, err, ErrVaultLocked)
	assert.False(t, dst.lock.IsUnlocked())
}

func TestBackupService_FileRoundTrip(t *testing.T) {
	src := seededEnv(t, testPIN)
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "backups")

	path, err := src.backup.ExportToFile(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "osteo-vault-20260302-090000.osteobak"), path)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1, "no temporary files are left behind")

	dst := newTestEnv(t, 0)
	require.NoError(t, dst.backup.ImportFromFile(ctx, path, testPIN))
	assertVaultHolds(t, dst, models.Invoices, "i1")
}

func TestBackupService_ImportFromMissingFile(t *testing.T) {
	env := newTestEnv(t, 0)

	err := env.backup.ImportFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.osteobak"), testPIN)
	assert.ErrorIs(t, err, ErrRestore)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBackupFileName(t *testing.T) {
	at := time.Date(2026, 10, 19, 17, 4, 5, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "osteo-vault-20261019-150405.osteobak", BackupFileName(at))
}
