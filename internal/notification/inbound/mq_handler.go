package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/notification/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/messaging"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OtpIssuedNotification handles otp_issued events. The raw body carries the
// plaintext code, so it is never logged here or downstream.
func (h *MQHandler) OtpIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OtpIssuedNotification")
	defer span.End()

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: otp issued notification", "otp_id", payload.OtpID)

	expiresAt, err := time.Parse(time.RFC3339, payload.ExpiresAt)
	if err != nil {
		slog.WarnContext(ctx, "otp issued message has invalid expires_at", "otp_id", payload.OtpID, "error", err)
	}

	if err := h.uc.ConsumeOtpIssued(ctx, usecase.ConsumeOtpIssuedInput{
		OtpID:     payload.OtpID,
		Number:    payload.Number,
		Code:      payload.Code,
		AuthType:  payload.AuthType,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued", "otp_id", payload.OtpID, "error", err)
		return err
	}

	return nil
}

// AccountRegisteredNotification handles account_registered events.
func (h *MQHandler) AccountRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AccountRegisteredNotification")
	defer span.End()

	var payload event.AccountRegisteredMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account registered notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: account registered notification", "account_id", payload.AccountID)

	if err := h.uc.ConsumeAccountRegistered(ctx, usecase.ConsumeAccountRegisteredInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		Nickname:  payload.Nickname,
		Number:    payload.Number,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account registered", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}

// PasswordChangedNotification handles password_changed events.
func (h *MQHandler) PasswordChangedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordChangedNotification")
	defer span.End()

	var payload event.PasswordChangedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password changed notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: password changed notification", "account_id", payload.AccountID)

	if err := h.uc.ConsumePasswordChanged(ctx, usecase.ConsumePasswordChangedInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		Number:    payload.Number,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume password changed", "account_id", payload.AccountID, "error", err)
		return err
	}

	return nil
}
