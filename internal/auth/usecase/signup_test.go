package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

func validSignupInput() SignupInput {
	return SignupInput{
		Email:           "User@Example.com",
		Username:        "newuser",
		Nickname:        "Newbie",
		Password:        "s3curePassword!",
		PhoneNumber:     "010-1234-5678",
		OtpRegisterCode: "483920",
	}
}

func TestUsecaseSignup(t *testing.T) {
	t.Run("SpendsOtpAndCreatesAccount", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		var spent entity.SpendOtpAndCreateAccount
		env.db.spendOtpAndCreateAccount = func(_ context.Context, in entity.SpendOtpAndCreateAccount) error {
			spent = in
			return nil
		}

		out, err := uc.Signup(context.Background(), validSignupInput())
		if err != nil {
			t.Fatalf("Signup() error = %v", err)
		}

		if spent.OtpID != rec.ID {
			t.Errorf("spent otp id = %d, want %d", spent.OtpID, rec.ID)
		}
		if spent.Account.Email != "user@example.com" {
			t.Errorf("account email = %q, want lowercased", spent.Account.Email)
		}
		if spent.Account.Password == "" || spent.Account.Password == "s3curePassword!" {
			t.Error("account password must be stored hashed")
		}
		if out.Email != "user@example.com" || out.PhoneNumber != "010-1234-5678" {
			t.Errorf("output = %+v", out)
		}

		if len(env.msg.registered) != 1 {
			t.Fatalf("registered events = %d, want 1", len(env.msg.registered))
		}
		got := env.msg.registered[0]
		if got.AccountID != out.ID || got.Email != "user@example.com" || got.Number != "010-1234-5678" {
			t.Errorf("registered event = %+v", got)
		}
	})

	t.Run("SucceedsWhenRegisteredPublishFails", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return verifiedOtp(mustHash(t, env.hmac, "483920"), "483920"), nil
		}
		env.db.spendOtpAndCreateAccount = func(context.Context, entity.SpendOtpAndCreateAccount) error { return nil }
		env.msg.err = errUnexpectedCall

		if _, err := uc.Signup(context.Background(), validSignupInput()); err != nil {
			t.Fatalf("Signup() error = %v", err)
		}
	})

	t.Run("RejectsUnverifiedOtp", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return issuedOtp(mustHash(t, env.hmac, "483920")), nil
		}

		_, err := uc.Signup(context.Background(), validSignupInput())
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsCodeMismatch", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		in := validSignupInput()
		in.OtpRegisterCode = "111111"

		_, err := uc.Signup(context.Background(), in)
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsSpentOtp", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		spentAt := testNow.Add(-10 * time.Second)
		rec.SpentAt = &spentAt
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		_, err := uc.Signup(context.Background(), validSignupInput())
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("LosesSpendRace", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}
		env.db.spendOtpAndCreateAccount = func(context.Context, entity.SpendOtpAndCreateAccount) error {
			return goerror.ErrNotFound
		}

		_, err := uc.Signup(context.Background(), validSignupInput())
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsDuplicateAccount", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}
		env.db.spendOtpAndCreateAccount = func(context.Context, entity.SpendOtpAndCreateAccount) error {
			return goerror.ErrConflict
		}

		_, err := uc.Signup(context.Background(), validSignupInput())
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsShortPassword", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		in := validSignupInput()
		in.Password = "short"

		if _, err := uc.Signup(context.Background(), in); err == nil {
			t.Fatal("Signup() error = nil, want validation error")
		}
	})
}
