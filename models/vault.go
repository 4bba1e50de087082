// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultFormatVersion is the current version of the vault metadata and the
// backup archive layout.
const VaultFormatVersion = 1

// VaultEntry is the persisted, encrypted form of a single record.
// Ciphertext is AES-256-GCM sealed with the session key; the additional
// authenticated data is the entry address (see [VaultEntry.AAD]).
type VaultEntry struct {
	EntityType EntityType `json:"entity_type" cbor:"1,keyasint"`
	ID         string     `json:"id" cbor:"2,keyasint"`
	Ciphertext []byte     `json:"ciphertext" cbor:"3,keyasint"`
	Nonce      []byte     `json:"nonce" cbor:"4,keyasint"`
	CreatedAt  time.Time  `json:"created_at" cbor:"5,keyasint"`
	UpdatedAt  time.Time  `json:"updated_at" cbor:"6,keyasint"`
}

// AAD returns the additional authenticated data binding the ciphertext to the
// entry address, so an entry copied under another (type, id) fails to open.
func (e VaultEntry) AAD() []byte {
	return EntryAAD(e.EntityType, e.ID)
}

// EntryAAD builds the additional authenticated data for an entry address.
func EntryAAD(entityType EntityType, id string) []byte {
	return []byte(string(entityType) + "/" + id)
}

// KDFParams records the Argon2id parameters a vault key was derived with.
type KDFParams struct {
	Time    uint32 `json:"time" cbor:"1,keyasint"`
	Memory  uint32 `json:"memory" cbor:"2,keyasint"`
	Threads uint8  `json:"threads" cbor:"3,keyasint"`
	KeyLen  uint32 `json:"key_len" cbor:"4,keyasint"`
}

// VaultMeta is the single metadata record persisted alongside the entries.
// Nothing in it is secret: the salt is public and the canary is ciphertext.
type VaultMeta struct {
	Salt             []byte    `json:"salt" cbor:"1,keyasint"`
	FormatVersion    int       `json:"format_version" cbor:"2,keyasint"`
	CanaryCiphertext []byte    `json:"canary_ciphertext" cbor:"3,keyasint"`
	CanaryNonce      []byte    `json:"canary_nonce" cbor:"4,keyasint"`
	KDF              KDFParams `json:"kdf" cbor:"5,keyasint"`
	CreatedAt        time.Time `json:"created_at" cbor:"6,keyasint"`
}
