// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/vetfinder/migrations"
)

// OpenFallbackDB opens the SQLite database backing the fallback store and
// applies pending migrations.
func OpenFallbackDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open fallback database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping fallback database: %w", err)
	}

	if err := migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate fallback database: %w", err)
	}

	return db, nil
}
