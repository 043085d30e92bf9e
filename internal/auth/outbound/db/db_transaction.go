package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

const spendOtpSQL = `
UPDATE auth_otps
SET spent_at = now()
WHERE id = $1 AND spent_at IS NULL`

const createAccountSQL = `
INSERT INTO accounts (id, email, username, nickname, password, phone_number)
VALUES ($1, $2, $3, $4, $5, $6)`

// SpendOtpAndCreateAccount spends the OTP row and inserts the account in one
// transaction. The spend is a compare-and-set on spent_at, so of any number
// of concurrent signups over the same record at most one commits; losers get
// goerror.ErrNotFound. Unique violations on the account surface as
// goerror.ErrConflict and roll everything back.
func (s *DB) SpendOtpAndCreateAccount(ctx context.Context, in entity.SpendOtpAndCreateAccount) (err error) {
	ctx, span := s.startSpan(ctx, "SpendOtpAndCreateAccount")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, spendOtpSQL, in.OtpID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if _, err := tx.Exec(ctx, createAccountSQL,
		in.Account.ID, in.Account.Email, in.Account.Username, in.Account.Nickname,
		in.Account.Password, in.Account.PhoneNumber); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

const revokeRefreshTokenForRotationSQL = `
UPDATE refresh_tokens
SET revoked = TRUE, replaced_by_token_id = $2
WHERE id = $1 AND revoked = FALSE`

// RotateRefreshToken revokes the old token row and inserts its replacement
// atomically. A token already revoked or rotated yields goerror.ErrNotFound.
func (s *DB) RotateRefreshToken(ctx context.Context, in entity.RotateRefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "RotateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, revokeRefreshTokenForRotationSQL, in.OldID, in.NewID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if _, err := tx.Exec(ctx, createRefreshTokenSQL,
		in.NewID, in.AccountID, in.NewToken,
		pgtype.Timestamptz{Valid: true, Time: in.NewExpiresAt}); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
