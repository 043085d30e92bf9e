package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/notification/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/mail"
	"github.com/rahmatsubandi/veriauth/internal/pkg/sms"
	"github.com/rahmatsubandi/veriauth/internal/pkg/valueobject"
)

type ConsumeOtpIssuedInput struct {
	OtpID     int64  `validate:"required,gt=0"`
	Number    string `validate:"required"`
	Code      string `validate:"required"`
	AuthType  string `validate:"required"`
	ExpiresAt time.Time
}

// ConsumeOtpIssued delivers a freshly issued code over the channel the auth
// module selected. Log lines reference the record by id and masked number,
// never by code.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "otp issued payload is not valid", "otp_id", in.OtpID, "error", err)
		return nil
	}

	channel := entity.ChannelFromAuthType(in.AuthType)
	if channel == entity.ChannelUnknown {
		slog.WarnContext(ctx, "otp issued with unknown channel", "otp_id", in.OtpID, "auth_type", in.AuthType)
		return nil
	}

	recipient, err := s.resolveRecipient(ctx, channel, in.Number)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no recipient for otp delivery",
			"otp_id", in.OtpID, "number", maskNumber(in.Number), "channel", channel.String())
		s.recordDelivery(ctx, in, channel, "", entity.DeliveryStatusSkipped, "no account bound to number")
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve otp recipient", "otp_id", in.OtpID, "error", err)
		return err
	}

	deliveryID := s.recordDelivery(ctx, in, channel, recipient, entity.DeliveryStatusPending, "")

	if err := s.deliver(ctx, channel, recipient, in); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp",
			"otp_id", in.OtpID, "channel", channel.String(), "error", err)
		s.updateDelivery(ctx, deliveryID, entity.DeliveryStatusFailed, err.Error())
		return err
	}

	s.updateDelivery(ctx, deliveryID, entity.DeliveryStatusSent, "")

	return nil
}

func (s *Usecase) resolveRecipient(ctx context.Context, channel entity.Channel, number string) (string, error) {
	if channel == entity.ChannelSms {
		return number, nil
	}

	return s.repoDB.GetAccountEmailByNumber(ctx, number)
}

func (s *Usecase) deliver(ctx context.Context, channel entity.Channel, recipient string, in ConsumeOtpIssuedInput) error {
	expires := in.ExpiresAt.Format("2006-01-02 15:04:05")

	if channel == entity.ChannelSms {
		return s.repoSMS.Send(ctx, sms.Message{
			To:   recipient,
			Text: fmt.Sprintf("%s verification code: %s", s.cfg.GetString("app.name"), in.Code),
		})
	}

	return s.repoMail.Send(ctx, mail.Message{
		To:      []string{recipient},
		Subject: "Your verification code",
		TextBody: fmt.Sprintf("Your verification code is %s.\r\n\r\n"+
			"It expires at %s. If you did not request it, you can ignore this message.", in.Code, expires),
	})
}

func (s *Usecase) recordDelivery(ctx context.Context, in ConsumeOtpIssuedInput, channel entity.Channel,
	recipient string, status entity.DeliveryStatus, reason string,
) int64 {
	id := s.uid.Generate()
	if err := s.repoDB.CreateOtpDelivery(ctx, entity.CreateOtpDelivery{
		ID:        id,
		OtpID:     in.OtpID,
		Number:    in.Number,
		Channel:   channel,
		Recipient: recipient,
		Status:    status,
		Meta: valueobject.JSONMap{
			"auth_type":  in.AuthType,
			"expires_at": in.ExpiresAt.Format(time.RFC3339),
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp delivery", "otp_id", in.OtpID, "error", err)
		return 0
	}

	if reason != "" {
		s.updateDelivery(ctx, id, status, reason)
	}

	return id
}

func (s *Usecase) updateDelivery(ctx context.Context, id int64, status entity.DeliveryStatus, reason string) {
	if id == 0 {
		return
	}

	if err := s.repoDB.UpdateOtpDeliveryStatus(ctx, entity.UpdateOtpDeliveryStatus{
		ID:     id,
		Status: status,
		Reason: reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update otp delivery status", "delivery_id", id, "error", err)
	}
}
