package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hostel_portal/internal/domain"
)

// InitSchema creates the records table when it does not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Collection stores one record kind as JSON documents in the shared records table.
type Collection[T domain.Entity[T]] struct {
	db   *sql.DB
	kind string
}

func New[T domain.Entity[T]](db *sql.DB, kind string) *Collection[T] {
	return &Collection[T]{db: db, kind: kind}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx, listRecordsSQL, c.kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.kind, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	var body []byte
	if err := c.db.QueryRowContext(ctx, getRecordSQL, c.kind, id).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrNotFound)
		}
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode %s %q: %w", c.kind, id, err)
	}
	return v, nil
}

func (c *Collection[T]) Upsert(ctx context.Context, v T) error {
	if v.Key() == "" {
		return fmt.Errorf("%w: %s without id", domain.ErrInvalidInput, c.kind)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, upsertRecordSQL, c.kind, v.Key(), string(body))
	return err
}

// UpsertMany writes vs in one multi-row statement.
func (c *Collection[T]) UpsertMany(ctx context.Context, vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	values := make([]string, 0, len(vs))
	args := make([]any, 0, len(vs)*3)
	for _, v := range vs {
		if v.Key() == "" {
			return fmt.Errorf("%w: %s without id", domain.ErrInvalidInput, c.kind)
		}
		body, err := json.Marshal(v)
		if err != nil {
			return err
		}
		values = append(values, "(?,?,?)")
		args = append(args, c.kind, v.Key(), string(body))
	}
	sqlStr := insertRecordsPrefix + strings.Join(values, ",") + insertRecordsOnDup
	if _, err := c.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert %d %s records: %w", len(vs), c.kind, err)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, deleteRecordSQL, c.kind, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrNotFound)
	}
	return nil
}
