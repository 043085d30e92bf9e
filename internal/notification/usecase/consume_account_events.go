package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahmatsubandi/veriauth/internal/pkg/mail"
	"github.com/rahmatsubandi/veriauth/internal/pkg/sms"
)

type ConsumeAccountRegisteredInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	Nickname  string
	Number    string
}

// ConsumeAccountRegistered sends the welcome mail for a freshly onboarded
// account. A malformed payload is dropped; a delivery failure is returned so
// the broker redelivers.
func (s *Usecase) ConsumeAccountRegistered(ctx context.Context, in ConsumeAccountRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "account registered payload is not valid", "account_id", in.AccountID, "error", err)
		return nil
	}

	name := in.Nickname
	if name == "" {
		name = in.Email
	}

	appName := s.cfg.GetString("app.name")
	if err := s.repoMail.Send(ctx, mail.Message{
		To:      []string{in.Email},
		Subject: fmt.Sprintf("Welcome to %s", appName),
		TextBody: fmt.Sprintf("Hi %s,\r\n\r\n"+
			"Your %s account is ready. Your phone number %s has been verified and is bound to this account.",
			name, appName, maskNumber(in.Number)),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver welcome mail", "account_id", in.AccountID, "error", err)
		return err
	}

	return nil
}

type ConsumePasswordChangedInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Email     string
	Number    string `validate:"required"`
}

// ConsumePasswordChanged notifies the account owner that their password was
// replaced, over SMS to the bound number and over mail when an address is
// known.
func (s *Usecase) ConsumePasswordChanged(ctx context.Context, in ConsumePasswordChangedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordChanged")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "password changed payload is not valid", "account_id", in.AccountID, "error", err)
		return nil
	}

	appName := s.cfg.GetString("app.name")
	if err := s.repoSMS.Send(ctx, sms.Message{
		To:   in.Number,
		Text: fmt.Sprintf("%s: your password was changed. If this was not you, contact support.", appName),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver password changed sms",
			"account_id", in.AccountID, "number", maskNumber(in.Number), "error", err)
		return err
	}

	if in.Email == "" {
		return nil
	}

	// The SMS already reached the owner, so a failed mail copy is only logged.
	if err := s.repoMail.Send(ctx, mail.Message{
		To:      []string{in.Email},
		Subject: "Your password was changed",
		TextBody: fmt.Sprintf("The password for your %s account was just changed.\r\n\r\n"+
			"If this was not you, reset your password and contact support.", appName),
	}); err != nil {
		slog.WarnContext(ctx, "failed to deliver password changed mail", "account_id", in.AccountID, "error", err)
	}

	return nil
}
