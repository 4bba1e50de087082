// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupFileExtension is appended to every exported archive so it is not
// mistaken for a generic data file.
const BackupFileExtension = ".osteobak"

// BackupMagic identifies an osteo-vault archive.
const BackupMagic = "OSTEOVAULT"

// BackupArchive is the portable export of the whole vault. Entries stay
// encrypted with the key derived from Salt; nothing is re-encrypted.
type BackupArchive struct {
	Magic         string       `cbor:"1,keyasint"`
	FormatVersion int          `cbor:"2,keyasint"`
	Salt          []byte       `cbor:"3,keyasint"`
	KDF           KDFParams    `cbor:"4,keyasint"`
	CanaryNonce   []byte       `cbor:"5,keyasint"`
	Canary        []byte       `cbor:"6,keyasint"`
	Entries       []VaultEntry `cbor:"7,keyasint"`
	ExportedAt    time.Time    `cbor:"8,keyasint"`
	// Checksum is SHA-256 over the entry addresses, nonces and ciphertexts.
	Checksum []byte `cbor:"9,keyasint"`
}

// Meta returns the vault metadata carried by the archive.
func (a *BackupArchive) Meta() VaultMeta {
	return VaultMeta{
		Salt:             a.Salt,
		FormatVersion:    a.FormatVersion,
		CanaryCiphertext: a.Canary,
		CanaryNonce:      a.CanaryNonce,
		KDF:              a.KDF,
		CreatedAt:        a.ExportedAt,
	}
}
