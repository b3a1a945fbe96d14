package sqlite

import (
	"context"
	"time"
)

// RevokeToken records a token identifier in the revocation ledger.
// Revoking an already-revoked jti is a no-op, so logout is idempotent.
func (s *Store) RevokeToken(ctx context.Context, jti string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, revoked_at)
		VALUES (?, ?)
		ON CONFLICT (jti) DO NOTHING`,
		jti,
		formatTime(time.Now()),
	)
	return err
}

// IsTokenRevoked reports whether a jti appears in the revocation ledger.
// Consulted on every authenticated request.
func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = ?)`, jti).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}
