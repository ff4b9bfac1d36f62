package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Revoked tokens live in the key/value table under a shared prefix, with
// the token's expiry as the value so stale entries can be swept.
const revokedPrefix = "revokedToken:"

// RevokeToken adds a token's JTI to the revocation list.
func RevokeToken(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO kv (key, value) VALUES (?, ?)`,
		revokedPrefix+jti, expiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM kv WHERE key LIKE ? AND value < ?`,
		revokedPrefix+"%", time.Now().UTC().Format(time.RFC3339),
	)

	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM kv WHERE key = ?`, revokedPrefix+jti,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return count > 0, nil
}
