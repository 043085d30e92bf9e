package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

type OtpVerifyInput struct {
	Number   string `validate:"required,krphone"`
	OtpCode  string `validate:"required"`
	AuthType entity.AuthOtpType
}

type OtpVerifyOutput struct {
	Number     string
	VerifiedAt time.Time
}

func (s *Usecase) OtpVerify(ctx context.Context, in OtpVerifyInput) (*OtpVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, numberValidationError(err)
	}

	authType := in.AuthType
	if authType == entity.AuthOtpTypeUnknown {
		authType = entity.DefaultAuthOtpType
	}
	if !authType.IsValid() {
		return nil, goerror.NewBusinessDetail("invalid auth type", goerror.CodeInvalidInput, "invalid_auth_type")
	}

	rec, err := s.repoDB.GetLatestOtpByNumber(ctx, in.Number)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no otp issued for number", "number", in.Number)
		return nil, goerror.NewBusinessDetail("no verification code for this number", goerror.CodeInvalidInput,
			"invalid_number", "number_format", numberFormatHint)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest otp", "number", in.Number, "error", err)
		return nil, goerror.NewServer(err)
	}

	if rec.AuthType != authType {
		slog.WarnContext(ctx, "otp auth type mismatch", "otp_id", rec.ID)
		return nil, goerror.NewBusinessDetail("auth type does not match", goerror.CodeInvalidInput, "invalid_auth_type")
	}

	if rec.Authenticated || rec.ConsumedCode != "" {
		slog.WarnContext(ctx, "otp already consumed", "otp_id", rec.ID)
		return nil, goerror.NewBusinessDetail("verification code already used", goerror.CodeInvalidInput, "already_consumed")
	}

	now := s.clock.Now()
	if rec.Expired(now) {
		slog.WarnContext(ctx, "otp expired", "otp_id", rec.ID)
		return nil, goerror.NewBusinessDetail("verification code expired", goerror.CodeInvalidInput, "expired_code")
	}

	if !s.hmac.Verify(rec.CodeHash, in.OtpCode) {
		slog.WarnContext(ctx, "otp code mismatch", "otp_id", rec.ID)
		return nil, goerror.NewBusinessDetail("verification code does not match", goerror.CodeInvalidInput, "invalid_code")
	}

	err = s.repoDB.MarkOtpVerified(ctx, rec.ID, in.OtpCode, now)
	if errors.Is(err, goerror.ErrNotFound) {
		// lost the race against a concurrent verify
		slog.WarnContext(ctx, "otp verified concurrently", "otp_id", rec.ID)
		return nil, goerror.NewBusinessDetail("verification code already used", goerror.CodeInvalidInput, "already_consumed")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark otp verified", "otp_id", rec.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OtpVerifyOutput{
		Number:     rec.Number,
		VerifiedAt: now,
	}, nil
}
