package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Number      string `validate:"required,krphone"`
	OtpCode     string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

type PasswordResetOutput struct {
	Number string
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) (*PasswordResetOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, numberValidationError(err)
	}

	rec, err := s.repoDB.GetLatestOtpByNumber(ctx, in.Number)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no otp issued for number", "number", in.Number)
		return nil, invalidOtpDataError()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest otp", "number", in.Number, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := ensureOtpConsumable(ctx, rec, in.OtpCode); err != nil {
		return nil, err
	}

	account, err := s.repoDB.GetAccountLoginInfoByNumber(ctx, in.Number)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no account bound to number", "number", in.Number)
		return nil, goerror.NewBusinessDetail("no account with this phone number", goerror.CodeInvalidInput, "invalid_phone_number")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by number", "number", in.Number, "error", err)
		return nil, goerror.NewServer(err)
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAccountPassword(ctx, account.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update account password", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The owner gets told their password changed; the reset itself is done.
	if err := s.repoMessaging.PublishPasswordChanged(ctx, PasswordChangedEvent{
		AccountID: account.ID,
		Email:     account.Email,
		Number:    in.Number,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish password changed", "account_id", account.ID, "error", err)
	}

	return &PasswordResetOutput{Number: in.Number}, nil
}
