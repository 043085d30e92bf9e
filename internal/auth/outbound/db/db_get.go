package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
)

const getLatestOtpByNumberSQL = `
SELECT id, number, code_hash, auth_type, validity_seconds, authenticated,
       COALESCE(consumed_code, ''), created_at, verified_at, spent_at
FROM auth_otps
WHERE number = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`

// GetLatestOtpByNumber returns the most recent record for the number,
// issued or not. Older records never participate in any decision.
func (s *DB) GetLatestOtpByNumber(ctx context.Context, number string) (_ *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestOtpByNumber")
	defer func() { s.endSpan(span, err) }()

	var (
		rec        entity.OtpRecord
		authType   int16
		createdAt  pgtype.Timestamptz
		verifiedAt pgtype.Timestamptz
		spentAt    pgtype.Timestamptz
	)

	row := s.conn.QueryRow(ctx, getLatestOtpByNumberSQL, number)
	if err = row.Scan(&rec.ID, &rec.Number, &rec.CodeHash, &authType, &rec.ValiditySeconds,
		&rec.Authenticated, &rec.ConsumedCode, &createdAt, &verifiedAt, &spentAt); err != nil {
		return nil, s.mapError(err)
	}

	rec.AuthType = entity.AuthOtpType(authType)
	rec.CreatedAt = createdAt.Time
	if verifiedAt.Valid {
		t := verifiedAt.Time
		rec.VerifiedAt = &t
	}
	if spentAt.Valid {
		t := spentAt.Time
		rec.SpentAt = &t
	}

	return &rec, nil
}

func (s *DB) GetAccountLoginInfoByEmail(ctx context.Context, email string) (_ *entity.AccountLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountLoginInfoByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.getAccountLoginInfo(ctx, "email", email)
}

func (s *DB) GetAccountLoginInfoByNumber(ctx context.Context, number string) (_ *entity.AccountLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountLoginInfoByNumber")
	defer func() { s.endSpan(span, err) }()

	return s.getAccountLoginInfo(ctx, "phone_number", number)
}

func (s *DB) getAccountLoginInfo(ctx context.Context, column, value string) (*entity.AccountLoginInfo, error) {
	var (
		acc         entity.AccountLoginInfo
		lastLoginAt pgtype.Timestamptz
	)

	query := `
SELECT id, email, username, nickname, password, phone_number, is_staff, last_login_at
FROM accounts
WHERE ` + column + ` = $1`

	row := s.conn.QueryRow(ctx, query, value)
	if err := row.Scan(&acc.ID, &acc.Email, &acc.Username, &acc.Nickname,
		&acc.Password, &acc.PhoneNumber, &acc.IsStaff, &lastLoginAt); err != nil {
		return nil, s.mapError(err)
	}

	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		acc.LastLoginAt = &t
	}

	return &acc, nil
}

const getAccountRefreshTokenSQL = `
SELECT a.id, a.email, r.id, r.token, r.revoked, r.replaced_by_token_id, r.expires_at
FROM refresh_tokens r
JOIN accounts a ON a.id = r.account_id
WHERE r.token = $1`

func (s *DB) GetAccountRefreshToken(ctx context.Context, tokenHash string) (_ *entity.AccountRefreshToken, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountRefreshToken")
	defer func() { s.endSpan(span, err) }()

	var (
		art        entity.AccountRefreshToken
		replacedBy pgtype.Int8
		expiresAt  pgtype.Timestamptz
	)

	row := s.conn.QueryRow(ctx, getAccountRefreshTokenSQL, tokenHash)
	if err = row.Scan(&art.AccountID, &art.AccountEmail, &art.RefreshID, &art.RefreshToken,
		&art.RefreshRevoked, &replacedBy, &expiresAt); err != nil {
		return nil, s.mapError(err)
	}

	if replacedBy.Valid {
		v := replacedBy.Int64
		art.RefreshReplacedByTokenID = &v
	}
	art.RefreshExpiresAt = expiresAt.Time

	return &art, nil
}
