package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

const markOtpVerifiedSQL = `
UPDATE auth_otps
SET authenticated = TRUE, consumed_code = $2, verified_at = $3
WHERE id = $1 AND authenticated = FALSE`

// MarkOtpVerified flips the record to verified exactly once. The guard on
// authenticated makes concurrent verifies serialize; the loser gets
// goerror.ErrNotFound.
func (s *DB) MarkOtpVerified(ctx context.Context, otpID int64, consumedCode string, verifiedAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "MarkOtpVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markOtpVerifiedSQL,
		otpID, consumedCode, pgtype.Timestamptz{Valid: true, Time: verifiedAt})
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const updateAccountLastLoginSQL = `
UPDATE accounts
SET last_login_at = $2, last_login_type = $3, updated_at = now()
WHERE id = $1`

func (s *DB) UpdateAccountLastLogin(ctx context.Context, accountID int64, at time.Time, loginType entity.LoginType) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, updateAccountLastLoginSQL,
		accountID, pgtype.Timestamptz{Valid: true, Time: at}, int16(loginType))
	return s.mapError(err)
}

const updateAccountPasswordSQL = `
UPDATE accounts
SET password = $2, updated_at = now()
WHERE id = $1`

func (s *DB) UpdateAccountPassword(ctx context.Context, accountID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateAccountPasswordSQL, accountID, passwordHash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const revokeAllRefreshTokenSQL = `
UPDATE refresh_tokens
SET revoked = TRUE
WHERE account_id = $1 AND revoked = FALSE`

func (s *DB) RevokeAllRefreshToken(ctx context.Context, accountID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAllRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, revokeAllRefreshTokenSQL, accountID)
	return s.mapError(err)
}
