package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/hkanaan/sijill/internal/kv"
)

// JWTSecret retrieves the token signing secret from the key/value store.
// If none exists, it generates one, stores it, and returns it. Insert-if-
// absent plus re-read avoids a TOCTOU race on concurrent startup.
func JWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	if err := kv.PutIfAbsent(ctx, db, kv.KeyJWTSecret, hex.EncodeToString(buf)); err != nil {
		return "", err
	}

	secret, ok, err := kv.Get(ctx, db, kv.KeyJWTSecret)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("jwt secret missing after insert")
	}
	return secret, nil
}
