package repository

import (
	"context"
	"database/sql"
)

// TokenRepo persists the token revocation ledger.  The table is append-only:
// a jti, once inserted, is never removed, so revocation is monotonic and a
// blocklisted token stays invalid past its natural expiry.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// Revoke records a jti in the blocklist.  Revoking the same jti twice is a
// no-op (INSERT IGNORE on the unique jti column) so logout is idempotent.
func (r *TokenRepo) Revoke(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO token_blocklist (jti) VALUES (?)", jti)
	return err
}

// IsRevoked reports whether a jti appears in the ledger.
func (r *TokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM token_blocklist WHERE jti=? LIMIT 1", jti).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
