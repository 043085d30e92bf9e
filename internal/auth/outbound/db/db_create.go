package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
)

const createOtpRecordSQL = `
INSERT INTO auth_otps (id, number, code_hash, auth_type, validity_seconds, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *DB) CreateOtpRecord(ctx context.Context, in entity.NewOtpRecord) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOtpRecord")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createOtpRecordSQL,
		in.ID, in.Number, in.CodeHash, int16(in.AuthType), in.ValiditySeconds,
		pgtype.Timestamptz{Valid: true, Time: in.CreatedAt})
	return s.mapError(err)
}

const createRefreshTokenSQL = `
INSERT INTO refresh_tokens (id, account_id, token, expires_at)
VALUES ($1, $2, $3, $4)`

func (s *DB) CreateRefreshToken(ctx context.Context, in entity.RefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createRefreshTokenSQL,
		in.ID, in.AccountID, in.Token, pgtype.Timestamptz{Valid: true, Time: in.ExpiresAt})
	return s.mapError(err)
}
