package store

import (
	"github.com/MKhiriev/osteo-vault/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	vaultMetaTable     = "vault_meta"
	vaultEntriesTable  = "vault_entries"
	remoteRecordsTable = "remote_records"
)

var (
	vaultMetaColumns = []string{
		"salt", "format_version", "canary_ciphertext", "canary_nonce",
		"kdf_time", "kdf_memory", "kdf_threads", "kdf_key_len", "created_at",
	}
	vaultEntryColumns = []string{
		"entity_type", "id", "ciphertext", "nonce", "created_at", "updated_at",
	}
)

func buildSelectMetaQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(vaultMetaColumns...).
		From(vaultMetaTable).
		Where(sq.Eq{"id": 1}).
		ToSql()
}

func buildUpsertMetaQuery(b sq.StatementBuilderType, m models.VaultMeta) (string, []any, error) {
	return b.Insert(vaultMetaTable).
		Columns(append([]string{"id"}, vaultMetaColumns...)...).
		Values(1, m.Salt, m.FormatVersion, m.CanaryCiphertext, m.CanaryNonce,
			m.KDF.Time, m.KDF.Memory, m.KDF.Threads, m.KDF.KeyLen, m.CreatedAt.UTC()).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			salt = excluded.salt,
			format_version = excluded.format_version,
			canary_ciphertext = excluded.canary_ciphertext,
			canary_nonce = excluded.canary_nonce,
			kdf_time = excluded.kdf_time,
			kdf_memory = excluded.kdf_memory,
			kdf_threads = excluded.kdf_threads,
			kdf_key_len = excluded.kdf_key_len,
			created_at = excluded.created_at`).
		ToSql()
}

// buildUpsertEntryQuery keeps created_at of an existing row.
func buildUpsertEntryQuery(b sq.StatementBuilderType, e models.VaultEntry) (string, []any, error) {
	return b.Insert(vaultEntriesTable).
		Columns(vaultEntryColumns...).
		Values(string(e.EntityType), e.ID, e.Ciphertext, e.Nonce, e.CreatedAt.UTC(), e.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT(entity_type, id) DO UPDATE SET
			ciphertext = excluded.ciphertext,
			nonce = excluded.nonce,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildSelectEntryQuery(b sq.StatementBuilderType, entityType models.EntityType, id string) (string, []any, error) {
	return b.Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		ToSql()
}

func buildDeleteEntryQuery(b sq.StatementBuilderType, entityType models.EntityType, id string) (string, []any, error) {
	return b.Delete(vaultEntriesTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id}).
		ToSql()
}

func buildListIDsQuery(b sq.StatementBuilderType, entityType models.EntityType) (string, []any, error) {
	return b.Select("id").
		From(vaultEntriesTable).
		Where(sq.Eq{"entity_type": string(entityType)}).
		OrderBy("id ASC").
		ToSql()
}

func buildSelectAllEntriesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(vaultEntryColumns...).
		From(vaultEntriesTable).
		OrderBy("entity_type ASC", "id ASC").
		ToSql()
}

func buildDeleteAllQuery(b sq.StatementBuilderType, table string) (string, []any, error) {
	return b.Delete(table).ToSql()
}

var remoteRecordColumns = []string{"entity_type", "id", "payload", "updated_at"}

func buildSelectRemoteRecordQuery(b sq.StatementBuilderType, entityType models.EntityType, id string, ephemeral bool) (string, []any, error) {
	return b.Select(remoteRecordColumns...).
		From(remoteRecordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id, "ephemeral": ephemeral}).
		ToSql()
}

func buildUpsertRemoteRecordQuery(b sq.StatementBuilderType, r models.RemoteRecord, ephemeral bool) (string, []any, error) {
	return b.Insert(remoteRecordsTable).
		Columns("entity_type", "id", "ephemeral", "payload").
		Values(string(r.EntityType), r.ID, ephemeral, []byte(r.Payload)).
		Suffix(`ON CONFLICT (entity_type, id, ephemeral) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()`).
		ToSql()
}

func buildDeleteRemoteRecordQuery(b sq.StatementBuilderType, entityType models.EntityType, id string, ephemeral bool) (string, []any, error) {
	return b.Delete(remoteRecordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "id": id, "ephemeral": ephemeral}).
		ToSql()
}

func buildListRemoteIDsQuery(b sq.StatementBuilderType, entityType models.EntityType, ephemeral bool) (string, []any, error) {
	return b.Select("id").
		From(remoteRecordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "ephemeral": ephemeral}).
		OrderBy("id ASC").
		ToSql()
}

func buildPurgeEphemeralQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Delete(remoteRecordsTable).
		Where(sq.Eq{"ephemeral": true}).
		ToSql()
}
