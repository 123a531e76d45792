// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// fallbackBackend keeps values in an unencrypted SQLite table. It exists so
// stored data survives keychain failures and stays readable on devices
// where the keychain cannot be initialized.
type fallbackBackend struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// NewFallbackBackend wraps db as the unencrypted fallback store. The
// database must already carry the secure_kv schema (see OpenFallbackDB).
func NewFallbackBackend(db *sql.DB) Backend {
	return &fallbackBackend{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (f *fallbackBackend) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := f.builder.
		Select("value").
		From("secure_kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select query: %w", err)
	}

	var value string
	err = f.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select fallback value: %w", err)
	}

	return value, true, nil
}

func (f *fallbackBackend) Set(ctx context.Context, key string, value string) error {
	query, args, err := f.builder.
		Insert("secure_kv").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := f.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fallback value: %w", err)
	}

	return nil
}

func (f *fallbackBackend) Delete(ctx context.Context, key string) error {
	query, args, err := f.builder.
		Delete("secure_kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := f.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete fallback value: %w", err)
	}

	return nil
}

func (f *fallbackBackend) WipeAll(ctx context.Context) error {
	query, _, err := f.builder.Delete("secure_kv").ToSql()
	if err != nil {
		return fmt.Errorf("build wipe query: %w", err)
	}

	if _, err := f.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("wipe fallback store: %w", err)
	}

	return nil
}
