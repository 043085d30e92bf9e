package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahmatsubandi/veriauth/internal/notification/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const getAccountEmailByNumberSQL = `
SELECT email
FROM accounts
WHERE phone_number = $1`

func (s *DB) GetAccountEmailByNumber(ctx context.Context, number string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountEmailByNumber")
	defer func() { s.endSpan(span, err) }()

	var email string
	if err = s.conn.QueryRow(ctx, getAccountEmailByNumberSQL, number).Scan(&email); err != nil {
		return "", s.mapError(err)
	}

	return email, nil
}

const createOtpDeliverySQL = `
INSERT INTO otp_deliveries (id, otp_id, number, channel, recipient, status, meta)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (s *DB) CreateOtpDelivery(ctx context.Context, in entity.CreateOtpDelivery) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOtpDelivery")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createOtpDeliverySQL,
		in.ID, in.OtpID, in.Number, int16(in.Channel), in.Recipient, int16(in.Status), in.Meta)
	return s.mapError(err)
}

const updateOtpDeliveryStatusSQL = `
UPDATE otp_deliveries
SET status = $2, reason = $3, updated_at = now()
WHERE id = $1`

func (s *DB) UpdateOtpDeliveryStatus(ctx context.Context, in entity.UpdateOtpDeliveryStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateOtpDeliveryStatus")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, updateOtpDeliveryStatusSQL, in.ID, int16(in.Status), in.Reason)
	return s.mapError(err)
}

const listOtpDeliveriesByNumberSQL = `
SELECT id, otp_id, number, channel, recipient, status, COALESCE(reason, ''), meta, created_at, updated_at
FROM otp_deliveries
WHERE number = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (s *DB) ListOtpDeliveriesByNumber(ctx context.Context, number string, limit int32) (_ []entity.OtpDelivery, err error) {
	ctx, span := s.startSpan(ctx, "ListOtpDeliveriesByNumber")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listOtpDeliveriesByNumberSQL, number, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var out []entity.OtpDelivery
	for rows.Next() {
		var (
			d       entity.OtpDelivery
			channel int16
			status  int16
		)
		if err = rows.Scan(&d.ID, &d.OtpID, &d.Number, &channel, &d.Recipient,
			&status, &d.Reason, &d.Meta, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}

		d.Channel = entity.Channel(channel)
		d.Status = entity.DeliveryStatus(status)
		out = append(out, d)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}
