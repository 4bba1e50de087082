package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

// sqliteDSN opens the file in exclusive locking mode: the first write takes
// an exclusive lock that the connection keeps until it is closed.
func sqliteDSN(path string) string {
	params := url.Values{}
	params.Set("_locking_mode", "EXCLUSIVE")
	params.Set("_busy_timeout", "0")
	params.Set("_foreign_keys", "1")
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// NewConnectSQLite opens the vault file at path, applies migrations and
// claims the file for this process. A second process gets ErrVaultInUse.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if path == "" {
		return nil, errors.New("empty vault path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating vault directory")
		return nil, fmt.Errorf("error creating vault directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// the exclusive lock belongs to a single connection; it must never be
	// recycled
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	db := &DB{
		DB:                 conn,
		dialect:            migrations.SQLite,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, db.wrapOpenError(err)
	}

	if err := db.Migrate(); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error migrating vault schema")
		return nil, db.wrapOpenError(err)
	}

	if err := db.claim(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error claiming vault file")
		return nil, db.wrapOpenError(err)
	}

	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("vault database opened")
	return db, nil
}

// claim writes the instance row so the connection takes the exclusive lock
// now instead of at the first vault write.
func (db *DB) claim(ctx context.Context) error {
	query, args, err := db.builder.
		Insert("vault_instance").
		Columns("id", "opened_at", "pid").
		Values(1, time.Now().UTC(), os.Getpid()).
		Suffix("ON CONFLICT(id) DO UPDATE SET opened_at = excluded.opened_at, pid = excluded.pid").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (db *DB) wrapOpenError(err error) error {
	if db.errorClassificator.Classify(err) == Busy {
		return fmt.Errorf("%w: %w", ErrVaultInUse, err)
	}
	return err
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify maps SQLITE_BUSY and SQLITE_LOCKED to [Busy]; IO and full-disk
// failures are [Retryable]; everything else is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return NonRetryable
	}
	switch se.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Busy
	case sqlite3.ErrIoErr, sqlite3.ErrFull:
		return Retryable
	}
	return NonRetryable
}
