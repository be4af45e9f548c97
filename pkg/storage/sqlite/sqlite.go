package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"go.uber.org/zap"

	sqlite3 "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// New creates a sqlite database given a path to the database file and applies
// pending migrations.
func New(filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dsn(filePath))
	if err != nil {
		return nil, err
	}

	if filePath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return SQLite{
		db: db,
	}, nil
}

var memSeq atomic.Int64

func dsn(filePath string) string {
	if filePath == ":memory:" {
		// a named in-memory database so the pool shares one schema without
		// colliding with other in-memory opens in the same process
		return fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_fk=1", memSeq.Add(1))
	}
	return "file:" + filePath + "?_fk=1"
}

func isUniqueConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s SQLite) handleDelete(ctx context.Context, stmt sqlite.DeleteStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s SQLite) handleStatement(ctx context.Context, stmt sqlite.Statement) (sql.Result, error) {
	log := logger.FromCtx(ctx)
	var result sql.Result

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return result, err
	}

	result, err = stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", stmt.DebugSql()), zap.Error(err))
		tx.Rollback()
		return result, err
	}

	return result, tx.Commit()
}
