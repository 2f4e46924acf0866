package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"netconfig/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps ":memory:"
	// databases from splitting per connection
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.configure(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := r.db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS networks (
		id INTEGER PRIMARY KEY,
		ssid TEXT NOT NULL,
		security TEXT NOT NULL,
		hidden INTEGER NOT NULL DEFAULT 0,
		psk TEXT,
		shared INTEGER NOT NULL DEFAULT 0,
		creator_uid INTEGER NOT NULL DEFAULT 0,
		creator_name TEXT,
		from_specifier INTEGER NOT NULL DEFAULT 0,
		from_suggestion INTEGER NOT NULL DEFAULT 0,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_networks_creator ON networks(creator_uid);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return err
	}

	// Passpoint support came after the initial schema
	return r.addColumnIfNotExists("networks", "fqdn", "TEXT")
}

// addColumnIfNotExists adds a column to an existing table
func (r *Repository) addColumnIfNotExists(table, column, definition string) error {
	rows, err := r.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = r.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

// GetNetwork retrieves a single network by ID. Returns nil, nil if not found.
func (r *Repository) GetNetwork(ctx context.Context, id int) (*domain.Configuration, error) {
	var row networkRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+networkColumns+` FROM networks WHERE id = ?`, id,
	).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get network: %w", err)
	}
	return row.toDomain()
}

// ListNetworks returns every stored network ordered by ID
func (r *Repository) ListNetworks(ctx context.Context) ([]*domain.Configuration, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+networkColumns+` FROM networks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	defer rows.Close()

	var networks []*domain.Configuration
	for rows.Next() {
		var row networkRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan network: %w", err)
		}
		cfg, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		networks = append(networks, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating networks: %w", err)
	}

	return networks, nil
}

// MaxNetworkID returns the highest stored ID, or 0 when empty
func (r *Repository) MaxNetworkID(ctx context.Context) (int, error) {
	var maxID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(id) FROM networks`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to query max id: %w", err)
	}
	return int(maxID.Int64), nil
}

// UpsertNetwork inserts or replaces the network with cfg.ID
func (r *Repository) UpsertNetwork(ctx context.Context, cfg *domain.Configuration) error {
	if _, err := r.db.ExecContext(ctx, upsertNetworkSQL, networkArgs(cfg)...); err != nil {
		return fmt.Errorf("failed to upsert network %d: %w", cfg.ID, err)
	}
	return nil
}

// DeleteNetwork removes a network. Reports whether a row was deleted.
func (r *Repository) DeleteNetwork(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM networks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete network %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// ReplaceNetworks atomically replaces every stored network with cfgs
func (r *Repository) ReplaceNetworks(ctx context.Context, cfgs []*domain.Configuration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM networks`); err != nil {
		return fmt.Errorf("failed to clear networks: %w", err)
	}
	for _, cfg := range cfgs {
		if _, err := tx.ExecContext(ctx, upsertNetworkSQL, networkArgs(cfg)...); err != nil {
			return fmt.Errorf("failed to insert network %d: %w", cfg.ID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
