// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/osteo-vault/models"
	"github.com/fxamacker/cbor/v2"
)

// MaxArchiveSize bounds how much is read from an archive stream.
const MaxArchiveSize = 512 << 20

var (
	archiveEncMode cbor.EncMode
	archiveDecMode cbor.DecMode
)

func init() {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	em, err := encOpts.EncMode()
	if err != nil {
		panic(err)
	}
	archiveEncMode = em

	dm, err := cbor.DecOptions{
		MaxArrayElements: 1 << 24,
		MaxNestedLevels:  16,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	archiveDecMode = dm
}

// ArchiveChecksum hashes every entry address, nonce and ciphertext in order.
// Length prefixes keep field boundaries unambiguous.
func ArchiveChecksum(entries []models.VaultEntry) []byte {
	h := sha256.New()
	var n [8]byte
	write := func(b []byte) {
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	for _, e := range entries {
		write([]byte(e.EntityType))
		write([]byte(e.ID))
		write(e.Nonce)
		write(e.Ciphertext)
	}
	return h.Sum(nil)
}

// EncodeArchive writes a as CBOR to w.
func EncodeArchive(w io.Writer, a *models.BackupArchive) error {
	if a == nil {
		return fmt.Errorf("%w: nil archive", ErrArchiveMalformed)
	}
	if err := archiveEncMode.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	return nil
}

// DecodeArchive reads one archive from r and checks its structure. It does
// not check the credential or entry authenticity.
func DecodeArchive(r io.Reader) (*models.BackupArchive, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrArchiveMalformed, err)
	}
	if len(data) > MaxArchiveSize {
		return nil, ErrArchiveTooLarge
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrArchiveMalformed)
	}

	var a models.BackupArchive
	if err := archiveDecMode.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveMalformed, err)
	}

	if err := VerifyArchive(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// VerifyArchive checks magic, version, required fields, duplicate addresses
// and the checksum.
func VerifyArchive(a *models.BackupArchive) error {
	switch {
	case a == nil:
		return fmt.Errorf("%w: nil archive", ErrArchiveMalformed)
	case a.Magic != models.BackupMagic:
		return fmt.Errorf("%w: bad magic", ErrArchiveMalformed)
	case a.FormatVersion != models.VaultFormatVersion:
		return fmt.Errorf("%w: %d", ErrArchiveVersion, a.FormatVersion)
	case len(a.Salt) == 0 || len(a.Canary) == 0 || len(a.CanaryNonce) == 0:
		return fmt.Errorf("%w: missing key check", ErrArchiveMalformed)
	}

	seen := make(map[entryKey]struct{}, len(a.Entries))
	for _, e := range a.Entries {
		if !e.EntityType.Valid() || e.ID == "" || len(e.Nonce) == 0 || len(e.Ciphertext) == 0 {
			return fmt.Errorf("%w: incomplete entry", ErrArchiveMalformed)
		}
		k := entryKey{e.EntityType, e.ID}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate entry %s/%s", ErrArchiveMalformed, e.EntityType, e.ID)
		}
		seen[k] = struct{}{}
	}

	if !bytes.Equal(a.Checksum, ArchiveChecksum(a.Entries)) {
		return ErrArchiveChecksum
	}
	return nil
}

// IsArchiveError reports whether err came from archive decoding or
// verification.
func IsArchiveError(err error) bool {
	return errors.Is(err, ErrArchiveMalformed) ||
		errors.Is(err, ErrArchiveVersion) ||
		errors.Is(err, ErrArchiveChecksum) ||
		errors.Is(err, ErrArchiveTooLarge)
}
