package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

type SignupInput struct {
	Email           string `validate:"required,email"`
	Username        string `validate:"required,min=3,max=50"`
	Nickname        string `validate:"required,min=1,max=50"`
	Password        string `validate:"required,password"`
	PhoneNumber     string `validate:"required,krphone"`
	OtpRegisterCode string `validate:"required"`
}

type SignupOutput struct {
	ID          int64
	Email       string
	Username    string
	Nickname    string
	PhoneNumber string
}

func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.Nickname = strings.TrimSpace(in.Nickname)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	rec, err := s.repoDB.GetLatestOtpByNumber(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no otp issued for number", "phone_number", in.PhoneNumber)
		return nil, invalidOtpDataError()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest otp", "phone_number", in.PhoneNumber, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := ensureOtpConsumable(ctx, rec, in.OtpRegisterCode); err != nil {
		return nil, err
	}

	if rec.SpentAt != nil {
		slog.WarnContext(ctx, "otp already spent", "otp_id", rec.ID)
		return nil, invalidOtpDataError()
	}

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	account := entity.NewAccount{
		ID:          s.uid.Generate(),
		Email:       in.Email,
		Username:    in.Username,
		Nickname:    in.Nickname,
		Password:    string(passwordHash),
		PhoneNumber: in.PhoneNumber,
	}

	err = s.repoDB.SpendOtpAndCreateAccount(ctx, entity.SpendOtpAndCreateAccount{
		OtpID:   rec.ID,
		Account: account,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		// lost the spend race against a concurrent signup
		slog.WarnContext(ctx, "otp spent concurrently", "otp_id", rec.ID)
		return nil, invalidOtpDataError()
	}
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "account already exists", "email", in.Email)
		return nil, invalidOtpDataError()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The account exists either way; the welcome notification is best effort.
	if err := s.repoMessaging.PublishAccountRegistered(ctx, AccountRegisteredEvent{
		AccountID: account.ID,
		Email:     account.Email,
		Nickname:  account.Nickname,
		Number:    account.PhoneNumber,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish account registered", "account_id", account.ID, "error", err)
	}

	return &SignupOutput{
		ID:          account.ID,
		Email:       account.Email,
		Username:    account.Username,
		Nickname:    account.Nickname,
		PhoneNumber: account.PhoneNumber,
	}, nil
}

// ensureOtpConsumable enforces the replay guard shared by signup and password
// reset: the record must have passed verification and the re-submitted code
// must equal the one recorded at verification time.
func ensureOtpConsumable(ctx context.Context, rec *entity.OtpRecord, code string) error {
	if !rec.Authenticated || rec.ConsumedCode == "" {
		slog.WarnContext(ctx, "otp not verified yet", "otp_id", rec.ID)
		return invalidOtpDataError()
	}

	if rec.ConsumedCode != code {
		slog.WarnContext(ctx, "otp code does not match consumed code", "otp_id", rec.ID)
		return invalidOtpDataError()
	}

	return nil
}

func invalidOtpDataError() error {
	return goerror.NewBusinessDetail("verification data is not valid", goerror.CodeInvalidInput, "invalid_auth_otp_data")
}
