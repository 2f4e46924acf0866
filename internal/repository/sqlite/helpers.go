package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"netconfig/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt maps a bool onto SQLite's 0/1 convention
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// Time Helpers
// ============================================================================

// Timestamps are stored as RFC 3339 text so they round-trip independent of
// the driver's DATETIME handling.

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(ns sql.NullString) (time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, ns.String)
}

// ============================================================================
// Network Row Scanner
// ============================================================================
//
// To add a column to the networks table:
// 1. Add field to networkRow and APPEND it to scanArgs()
// 2. APPEND the column to networkColumns and to upsertNetworkSQL
// 3. Map it in toDomain() and networkArgs()
// 4. Add a migration using addColumnIfNotExists()

// networkRow holds all columns from a networks query for scanning
type networkRow struct {
	ID             int
	SSID           string
	Security       string
	Hidden         int
	PreSharedKey   sql.NullString
	Shared         int
	CreatorUID     int
	CreatorName    sql.NullString
	FromSpecifier  int
	FromSuggestion int
	FQDN           sql.NullString
	CreatedAt      sql.NullString
	UpdatedAt      sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match networkColumns order exactly
func (r *networkRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,             // 1
		&r.SSID,           // 2
		&r.Security,       // 3
		&r.Hidden,         // 4
		&r.PreSharedKey,   // 5
		&r.Shared,         // 6
		&r.CreatorUID,     // 7
		&r.CreatorName,    // 8
		&r.FromSpecifier,  // 9
		&r.FromSuggestion, // 10
		&r.FQDN,           // 11
		&r.CreatedAt,      // 12
		&r.UpdatedAt,      // 13
	}
}

// toDomain converts the scanned row to a domain.Configuration
func (r *networkRow) toDomain() (*domain.Configuration, error) {
	cfg := &domain.Configuration{
		ID:             r.ID,
		SSID:           r.SSID,
		Security:       domain.SecurityType(r.Security),
		Hidden:         r.Hidden != 0,
		PreSharedKey:   nullToString(r.PreSharedKey),
		Shared:         r.Shared != 0,
		CreatorUID:     r.CreatorUID,
		CreatorName:    nullToString(r.CreatorName),
		FromSpecifier:  r.FromSpecifier != 0,
		FromSuggestion: r.FromSuggestion != 0,
		FQDN:           nullToString(r.FQDN),
	}

	var err error
	if cfg.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if cfg.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return cfg, nil
}

// networkArgs returns the insert arguments in networkColumns order
func networkArgs(cfg *domain.Configuration) []interface{} {
	return []interface{}{
		cfg.ID,
		cfg.SSID,
		string(cfg.Security),
		boolToInt(cfg.Hidden),
		stringToNull(cfg.PreSharedKey),
		boolToInt(cfg.Shared),
		cfg.CreatorUID,
		stringToNull(cfg.CreatorName),
		boolToInt(cfg.FromSpecifier),
		boolToInt(cfg.FromSuggestion),
		stringToNull(cfg.FQDN),
		formatTime(cfg.CreatedAt),
		formatTime(cfg.UpdatedAt),
	}
}

// networkColumns is the SELECT column list for network queries
const networkColumns = `id, ssid, security, hidden, psk, shared, creator_uid,
	creator_name, from_specifier, from_suggestion, fqdn, created_at, updated_at`

const upsertNetworkSQL = `
	INSERT INTO networks (` + networkColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		ssid = excluded.ssid,
		security = excluded.security,
		hidden = excluded.hidden,
		psk = excluded.psk,
		shared = excluded.shared,
		creator_uid = excluded.creator_uid,
		creator_name = excluded.creator_name,
		from_specifier = excluded.from_specifier,
		from_suggestion = excluded.from_suggestion,
		fqdn = excluded.fqdn,
		updated_at = excluded.updated_at
`
