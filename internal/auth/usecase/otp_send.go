package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
)

// numberFormatHint is the example shape shown alongside invalid_number errors.
const numberFormatHint = "010-0000-0000"

type OtpSendInput struct {
	Number   string `validate:"required,krphone"`
	AuthType entity.AuthOtpType
}

type OtpSendOutput struct {
	Number    string
	AuthType  entity.AuthOtpType
	OtpCode   string
	ExpiredAt time.Time
}

func (s *Usecase) OtpSend(ctx context.Context, in OtpSendInput) (*OtpSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpSend")
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

	code, err := s.codegen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	// The stored created_at is the single source of the expiry deadline:
	// the response, the issued event and the verify gate all derive from it.
	record := entity.NewOtpRecord{
		ID:              s.uid.Generate(),
		Number:          in.Number,
		CodeHash:        string(codeHash),
		AuthType:        authType,
		ValiditySeconds: int64(s.cfg.GetSecond("modules.auth.otp_validity_seconds") / time.Second),
		CreatedAt:       s.clock.Now(),
	}
	expiresAt := record.ExpiresAt()

	lockTTL := s.cfg.GetSecond("modules.auth.otp_send_lock_seconds")
	err = s.idemp.Exec(ctx, "otp_send:"+in.Number, func(ctx context.Context) error {
		return s.repoDB.CreateOtpRecord(ctx, record)
	}, idempotency.WithLockDuration(lockTTL), idempotency.WithStateTTL(lockTTL))
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.WarnContext(ctx, "duplicate otp send absorbed", "number", in.Number)
		return nil, goerror.NewBusiness("verification code was just requested", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp record", "number", in.Number, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		OtpID:     record.ID,
		Number:    record.Number,
		Code:      code,
		AuthType:  authType,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "otp_id", record.ID, "error", err)
	}

	return &OtpSendOutput{
		Number:    record.Number,
		AuthType:  authType,
		OtpCode:   code,
		ExpiredAt: expiresAt,
	}, nil
}

// numberValidationError maps a failed number format check to its business
// error and falls back to a generic invalid input error otherwise.
func numberValidationError(err error) error {
	var fieldErrs validator.V10ValidationError
	if errors.As(err, &fieldErrs) {
		if _, ok := fieldErrs["number"]; ok {
			return goerror.NewBusinessDetail("invalid phone number format", goerror.CodeInvalidInput,
				"invalid_number", "number_format", numberFormatHint)
		}
	}

	return goerror.NewInvalidInput(err)
}
