package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
)

// backupTimeLayout names exported files; it sorts lexically by time.
const backupTimeLayout = "20060102-150405"

// BackupFileName is the file name of an archive exported at t.
func BackupFileName(t time.Time) string {
	return "osteo-vault-" + t.UTC().Format(backupTimeLayout) + models.BackupFileExtension
}

type backupService struct {
	repo     store.VaultRepository
	keyChain crypto.KeyChainService
	lock     LockService
	clock    Clock

	logger *logger.Logger
}

// NewBackupService returns the [BackupService] for the vault behind lock.
func NewBackupService(repo store.VaultRepository, keyChain crypto.KeyChainService, lock LockService, clock Clock, logger *logger.Logger) BackupService {
	if clock == nil {
		clock = SystemClock
	}
	return &backupService{
		repo:     repo,
		keyChain: keyChain,
		lock:     lock,
		clock:    clock,
		logger:   logger,
	}
}

func (b *backupService) Export(ctx context.Context) (*models.BackupArchive, error) {
	log := logger.FromContext(ctx)

	var archive *models.BackupArchive
	err := b.lock.WithKey(func(*crypto.SecretKey) error {
		meta, err := b.repo.GetMeta(ctx)
		if errors.Is(err, store.ErrMetaNotFound) {
			return ErrVaultNotConfigured
		}
		if err != nil {
			return fmt.Errorf("read vault meta: %w", err)
		}

		entries, err := b.repo.AllEntries(ctx)
		if err != nil {
			return fmt.Errorf("read vault entries: %w", err)
		}

		archive = &models.BackupArchive{
			Magic:         models.BackupMagic,
			FormatVersion: models.VaultFormatVersion,
			Salt:          meta.Salt,
			KDF:           meta.KDF,
			CanaryNonce:   meta.CanaryNonce,
			Canary:        meta.CanaryCiphertext,
			Entries:       entries,
			ExportedAt:    b.clock.Now().UTC(),
			Checksum:      store.ArchiveChecksum(entries),
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "backupService.Export").Msg("export failed")
		return nil, err
	}

	b.logger.Info().Str("func", "backupService.Export").Int("entries", len(archive.Entries)).Msg("vault exported")
	return archive, nil
}

func (b *backupService) WriteArchive(ctx context.Context, w io.Writer) error {
	archive, err := b.Export(ctx)
	if err != nil {
		return err
	}
	return store.EncodeArchive(w, archive)
}

// ExportToFile writes to a temporary file in dir and renames it into place,
// so a failed export never leaves a truncated .osteobak behind.
func (b *backupService) ExportToFile(ctx context.Context, dir string) (string, error) {
	archive, err := b.Export(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(dir, BackupFileName(archive.ExportedAt))

	tmp, err := os.CreateTemp(dir, ".osteo-vault-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := store.EncodeArchive(tmp, archive); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync backup file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move backup file: %w", err)
	}

	b.logger.Info().Str("func", "backupService.ExportToFile").Str("path", path).Msg("backup written")
	return path, nil
}

// Import checks everything that can be checked before the vault is touched:
// archive structure, the credential against the archive canary and the
// authenticity of every entry under the archive key.
func (b *backupService) Import(ctx context.Context, archive *models.BackupArchive, credential string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	if err := store.VerifyArchive(archive); err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	if err := crypto.ValidateParams(archive.KDF); err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}

	key, err := b.keyChain.DeriveKeyWithParams(credential, archive.Salt, archive.KDF)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}

	if _, err := b.keyChain.Open(key, archive.Canary, archive.CanaryNonce, crypto.CanaryAAD); err != nil {
		key.Destroy()
		return fmt.Errorf("%w: %w", ErrRestore, ErrWrongCredential)
	}

	for _, e := range archive.Entries {
		if _, err := b.keyChain.Open(key, e.Ciphertext, e.Nonce, e.AAD()); err != nil {
			key.Destroy()
			log.Warn().
				Str("func", "backupService.Import").
				Str("entity_type", e.EntityType.String()).
				Str("id", e.ID).
				Msg("archive entry failed authentication")
			return fmt.Errorf("%w: %w: %s/%s", ErrRestore, ErrIntegrity, e.EntityType, e.ID)
		}
	}

	meta := archive.Meta()
	err = b.lock.Replace(ctx, key, func(ctx context.Context) error {
		return b.repo.ReplaceAll(ctx, meta, archive.Entries)
	})
	if err != nil {
		log.Err(err).Str("func", "backupService.Import").Msg("failed to replace vault content")
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}

	b.logger.Info().Str("func", "backupService.Import").Int("entries", len(archive.Entries)).Msg("vault restored")
	return nil
}

func (b *backupService) ImportFromReader(ctx context.Context, r io.Reader, credential string) error {
	archive, err := store.DecodeArchive(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	return b.Import(ctx, archive, credential)
}

func (b *backupService) ImportFromFile(ctx context.Context, path, credential string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRestore, err)
	}
	defer f.Close()

	return b.ImportFromReader(ctx, f, credential)
}
