// Package postgres provides PostgreSQL implementations of the catalog repositories.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"filmorate/internal/catalog/domain/entities"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Коды ошибок PostgreSQL.
const (
	pgStringTooLong       = "22001"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError переводит нарушения ограничений в ошибки домена.
func translateError(err error, format string, args ...any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return entities.NotFoundError(format, args...)
		case pgCheckViolation:
			return entities.ValidationError("constraint %s violated", pgErr.ConstraintName)
		case pgStringTooLong:
			return entities.ValidationError("value is too long")
		}
	}
	return err
}

// collectIDs читает строки из одного столбца bigint.
func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// collectPairs читает строки из двух столбцов bigint и группирует вторые по первым.
func collectPairs(rows pgx.Rows) (map[int64][]int64, error) {
	defer rows.Close()

	pairs := make(map[int64][]int64)
	for rows.Next() {
		var owner, id int64
		if err := rows.Scan(&owner, &id); err != nil {
			return nil, err
		}
		pairs[owner] = append(pairs[owner], id)
	}
	return pairs, rows.Err()
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
