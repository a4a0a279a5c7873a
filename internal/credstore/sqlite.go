package credstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	_ "modernc.org/sqlite"

	"github.com/me/skywarn/internal/logging"
)

// SQLiteStore implements Store using SQLite with values sealed under
// XChaCha20-Poly1305. The seal key is derived from a machine-local key
// file, so the database alone does not reveal the stored secrets.
type SQLiteStore struct {
	db     *sql.DB
	aead   cipher.AEAD
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the credential database at dbPath
// using the master key at keyPath. Use ":memory:" for dbPath in tests.
func NewSQLiteStore(dbPath, keyPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	master, err := loadOrCreateMasterKey(keyPath)
	if err != nil {
		return nil, err
	}
	sealKey, err := deriveSealKey(master)
	if err != nil {
		return nil, fmt.Errorf("derive seal key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(sealKey)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, fmt.Errorf("create credential directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		aead:   aead,
		logger: logger.With("component", "credstore"),
	}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	if dbPath != ":memory:" {
		// sqlite creates the file with default umask permissions.
		if err := os.Chmod(dbPath, 0600); err != nil {
			db.Close()
			return nil, fmt.Errorf("restrict db permissions: %w", err)
		}
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	_, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS credentials (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	return err
}

// seal encrypts value, prepending the random nonce to the ciphertext.
func (s *SQLiteStore) seal(value string) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, []byte(value), nil), nil
}

func (s *SQLiteStore) open(sealed []byte) (string, error) {
	ns := s.aead.NonceSize()
	if len(sealed) < ns {
		return "", fmt.Errorf("sealed value too short")
	}
	plain, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("unseal value: %w", err)
	}
	return string(plain), nil
}

// Get returns the value stored under key, or ok=false when absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.logger.Debug("sql", "op", "select", "key", key)

	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key).Scan(&sealed)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	value, err := s.open(sealed)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany stores all entries in a single transaction.
func (s *SQLiteStore) SetMany(ctx context.Context, entries map[string]string) error {
	s.logger.Debug("sql", "op", "upsert", "keys", len(entries))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for key, value := range entries {
		sealed, err := s.seal(value)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, sealed, now); err != nil {
			return fmt.Errorf("upsert %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Delete removes key; absent keys are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.DeleteMany(ctx, key)
}

// DeleteMany removes all keys in a single transaction.
func (s *SQLiteStore) DeleteMany(ctx context.Context, keys ...string) error {
	s.logger.Debug("sql", "op", "delete", "keys", len(keys))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return tx.Commit()
}
