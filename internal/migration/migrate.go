// Package migration applies the embedded schema migrations in file order.
package migration

import (
	"database/sql"
	"fmt"
	"sort"
)

// RunMigrations executes every embedded *.up.sql file in lexical order. Each
// file must be idempotent (CREATE TABLE IF NOT EXISTS style); there is no
// version bookkeeping table for this small schema.
func RunMigrations(db *sql.DB) error {
	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(raw)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
