package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

type LoginInput struct {
	LoginType   entity.LoginType
	Email       string `validate:"omitempty,email"`
	PhoneNumber string `validate:"omitempty,krphone"`
	Password    string `validate:"required"`
}

// LoginOutput carries the account as it looked at authentication time, so
// LastLoginAt is the previous login (nil on a first login), not this one.
type LoginOutput struct {
	Account      entity.AccountLoginInfo
	LastLoginAt  *time.Time
	AccessToken  string
	RefreshToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	loginType := in.LoginType
	if loginType == entity.LoginTypeUnknown {
		loginType = entity.DefaultLoginType
	}
	if !loginType.IsValid() {
		return nil, goerror.NewInvalidInput(errors.New("unsupported login type"))
	}

	account, err := s.lookupAccount(ctx, loginType, in)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "login_type", loginType.String())
		return nil, goerror.NewBusinessDetail("account does not exist", goerror.CodeInvalidInput, "no_exist_user")
	}
	if err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(account.Password, in.Password) {
		slog.WarnContext(ctx, "account password mismatch", "account_id", account.ID)
		return nil, goerror.NewBusinessDetail("password does not match", goerror.CodeInvalidInput, "wrong_password")
	}

	acToken, err := s.jwt.Generate(account.ID, account.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refToken := s.oid.Generate()
	refTokenHash, err := s.hmac.Hash(refToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateRefreshToken(ctx, entity.RefreshToken{
		ID:        s.uid.Generate(),
		AccountID: account.ID,
		Token:     string(refTokenHash),
		ExpiresAt: s.clock.Now().Add(s.cfg.GetDay("modules.auth.refresh_token_ttl_days")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create refresh token", "account_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// The session is already issued at this point, so a failed bookkeeping
	// update must not fail the login.
	if err := s.repoDB.UpdateAccountLastLogin(ctx, account.ID, s.clock.Now(), loginType); err != nil {
		slog.ErrorContext(ctx, "failed to repo update last login", "account_id", account.ID, "error", err)
	}

	return &LoginOutput{
		Account:      *account,
		LastLoginAt:  account.LastLoginAt,
		AccessToken:  acToken,
		RefreshToken: refToken,
	}, nil
}

func (s *Usecase) lookupAccount(ctx context.Context, lt entity.LoginType, in LoginInput) (*entity.AccountLoginInfo, error) {
	switch lt {
	case entity.LoginTypePhone:
		if in.PhoneNumber == "" {
			return nil, goerror.NewInvalidInput(errors.New("phone_number is required"))
		}

		account, err := s.repoDB.GetAccountLoginInfoByNumber(ctx, in.PhoneNumber)
		if err != nil && !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get account by number", "phone_number", in.PhoneNumber, "error", err)
			return nil, goerror.NewServer(err)
		}

		return account, err

	default:
		if in.Email == "" {
			return nil, goerror.NewInvalidInput(errors.New("email is required"))
		}

		account, err := s.repoDB.GetAccountLoginInfoByEmail(ctx, in.Email)
		if err != nil && !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
			return nil, goerror.NewServer(err)
		}

		return account, err
	}
}
