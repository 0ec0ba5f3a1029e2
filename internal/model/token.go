package model

import "time"

// RevokedToken models an entry in the `token_blocklist` table.  The table is
// an append-only revocation ledger: the presence of a row for a given jti
// means every token carrying that jti is permanently invalid, regardless of
// its expiry.  Rows are never deleted.
type RevokedToken struct {
	ID        uint64    // token_blocklist.id
	JTI       string    // token_blocklist.jti (JWT unique identifier)
	CreatedAt time.Time // token_blocklist.created_at
}
