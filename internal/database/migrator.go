package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrator runs the SQL files under migrations/ in filename order,
// tracking applied files in schema_migrations so reruns are no-ops.
// Migrations are read from the filesystem at runtime rather than
// embedded, to allow schema updates without recompiling.
type Migrator struct {
	pool *pgxpool.Pool
	dir  string
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool, dir: "migrations"}
}

func (m *Migrator) RunMigrations(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	ran := 0
	for _, filename := range files {
		if applied[filename] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		log.Printf("[Migrate] Running %s", filename)
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", filename, err)
		}

		if err := m.recordMigration(ctx, filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
		ran++
	}

	if ran > 0 {
		log.Printf("[Migrate] Applied %d new migration(s)", ran)
	} else {
		log.Println("[Migrate] Database is up to date")
	}
	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := m.pool.Exec(ctx, query)
	return err
}

func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.pool.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}

	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, filename string) error {
	query := `
		INSERT INTO schema_migrations (filename)
		VALUES ($1)
		ON CONFLICT (filename) DO NOTHING
	`
	_, err := m.pool.Exec(ctx, query, filename)
	return err
}
