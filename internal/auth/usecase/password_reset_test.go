package usecase

import (
	"context"
	"testing"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
)

func TestUsecasePasswordReset(t *testing.T) {
	t.Run("ReplacesPassword", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}
		env.db.getAccountLoginInfoByNumber = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return &entity.AccountLoginInfo{ID: 7, Email: "user@example.com", PhoneNumber: "010-1234-5678"}, nil
		}

		var updatedID int64
		var updatedHash string
		env.db.updateAccountPassword = func(_ context.Context, accountID int64, passwordHash string) error {
			updatedID = accountID
			updatedHash = passwordHash
			return nil
		}

		out, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "010-1234-5678",
			OtpCode:     "483920",
			NewPassword: "fresh-Password-1",
		})
		if err != nil {
			t.Fatalf("PasswordReset() error = %v", err)
		}

		if updatedID != 7 {
			t.Errorf("updated account id = %d, want 7", updatedID)
		}
		if !hash.NewBcrypt(4, "test-pepper").Verify(updatedHash, "fresh-Password-1") {
			t.Error("stored hash does not verify against the new password")
		}
		if out.Number != "010-1234-5678" {
			t.Errorf("output number = %q", out.Number)
		}

		if len(env.msg.pwChanged) != 1 {
			t.Fatalf("password changed events = %d, want 1", len(env.msg.pwChanged))
		}
		got := env.msg.pwChanged[0]
		if got.AccountID != 7 || got.Email != "user@example.com" || got.Number != "010-1234-5678" {
			t.Errorf("password changed event = %+v", got)
		}
	})

	t.Run("SucceedsWhenChangedPublishFails", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return verifiedOtp(mustHash(t, env.hmac, "483920"), "483920"), nil
		}
		env.db.getAccountLoginInfoByNumber = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return &entity.AccountLoginInfo{ID: 7, Email: "user@example.com", PhoneNumber: "010-1234-5678"}, nil
		}
		env.db.updateAccountPassword = func(context.Context, int64, string) error { return nil }
		env.msg.err = errUnexpectedCall

		if _, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "010-1234-5678",
			OtpCode:     "483920",
			NewPassword: "fresh-Password-1",
		}); err != nil {
			t.Fatalf("PasswordReset() error = %v", err)
		}
	})

	t.Run("RejectsUnverifiedOtp", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return issuedOtp(mustHash(t, env.hmac, "483920")), nil
		}

		_, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "010-1234-5678",
			OtpCode:     "483920",
			NewPassword: "fresh-Password-1",
		})
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsCodeMismatch", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return verifiedOtp(mustHash(t, env.hmac, "483920"), "483920"), nil
		}

		_, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "010-1234-5678",
			OtpCode:     "111111",
			NewPassword: "fresh-Password-1",
		})
		wantDetail(t, err, "invalid_auth_otp_data")
	})

	t.Run("RejectsNumberWithoutAccount", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return verifiedOtp(mustHash(t, env.hmac, "483920"), "483920"), nil
		}
		env.db.getAccountLoginInfoByNumber = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return nil, goerror.ErrNotFound
		}

		_, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "010-1234-5678",
			OtpCode:     "483920",
			NewPassword: "fresh-Password-1",
		})
		wantDetail(t, err, "invalid_phone_number")
	})

	t.Run("RejectsMalformedNumber", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.PasswordReset(context.Background(), PasswordResetInput{
			Number:      "12345",
			OtpCode:     "483920",
			NewPassword: "fresh-Password-1",
		})
		wantDetail(t, err, "invalid_number")
	})
}
