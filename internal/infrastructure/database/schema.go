package database

import (
	"context"
	"fmt"

	pkgdb "book-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// schemaLockKey serializes bootstrap between api and worker processes.
const schemaLockKey int64 = 0x626f6f6b73

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// get-or-create theo name dựa vào unique index này
	`CREATE UNIQUE INDEX IF NOT EXISTS authors_name_key ON authors (name)`,
	`CREATE TABLE IF NOT EXISTS books (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(100) NOT NULL,
		description VARCHAR(255),
		price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		author_id   BIGINT NOT NULL REFERENCES authors (id)
	)`,
	`CREATE INDEX IF NOT EXISTS books_author_id_idx ON books (author_id)`,
}

// EnsureSchema tạo bảng + index nếu chưa có. An toàn khi gọi nhiều lần.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	err := pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("[DATABASE] Schema ready")
	return nil
}
