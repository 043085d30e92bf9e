package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

func TestUsecaseOtpVerify(t *testing.T) {
	t.Run("MarksLatestCodeAsVerified", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := issuedOtp(mustHash(t, env.hmac, "483920"))
		env.db.getLatestOtpByNumber = func(_ context.Context, number string) (*entity.OtpRecord, error) {
			if number != rec.Number {
				t.Errorf("lookup number = %q, want %q", number, rec.Number)
			}
			return rec, nil
		}

		var markedID int64
		var markedCode string
		env.db.markOtpVerified = func(_ context.Context, otpID int64, consumedCode string, verifiedAt time.Time) error {
			markedID = otpID
			markedCode = consumedCode
			if !verifiedAt.Equal(testNow) {
				t.Errorf("verifiedAt = %v, want %v", verifiedAt, testNow)
			}
			return nil
		}

		out, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-1234-5678",
			OtpCode: "483920",
		})
		if err != nil {
			t.Fatalf("OtpVerify() error = %v", err)
		}

		if markedID != rec.ID || markedCode != "483920" {
			t.Errorf("marked (%d, %q), want (%d, %q)", markedID, markedCode, rec.ID, "483920")
		}
		if out.Number != rec.Number || !out.VerifiedAt.Equal(testNow) {
			t.Errorf("output = %+v", out)
		}
	})

	t.Run("RejectsWrongCode", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := issuedOtp(mustHash(t, env.hmac, "483920"))
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-1234-5678",
			OtpCode: "000000",
		})
		wantDetail(t, err, "invalid_code")
	})

	t.Run("RejectsExpiredCode", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := issuedOtp(mustHash(t, env.hmac, "483920"))
		rec.CreatedAt = testNow.Add(-10 * time.Minute)
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-1234-5678",
			OtpCode: "483920",
		})
		wantDetail(t, err, "expired_code")
	})

	t.Run("RejectsAlreadyConsumedCode", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := verifiedOtp(mustHash(t, env.hmac, "483920"), "483920")
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-1234-5678",
			OtpCode: "483920",
		})
		wantDetail(t, err, "already_consumed")
	})

	t.Run("RejectsAuthTypeMismatch", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := issuedOtp(mustHash(t, env.hmac, "483920"))
		rec.AuthType = entity.AuthOtpTypePhone
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:   "010-1234-5678",
			OtpCode:  "483920",
			AuthType: entity.AuthOtpTypeEmail,
		})
		wantDetail(t, err, "invalid_auth_type")
	})

	t.Run("RejectsNumberWithoutIssuedCode", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return nil, goerror.ErrNotFound
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-9999-9999",
			OtpCode: "483920",
		})
		wantDetail(t, err, "invalid_number")
	})

	t.Run("LosesVerifyRace", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		rec := issuedOtp(mustHash(t, env.hmac, "483920"))
		env.db.getLatestOtpByNumber = func(context.Context, string) (*entity.OtpRecord, error) {
			return rec, nil
		}
		env.db.markOtpVerified = func(context.Context, int64, string, time.Time) error {
			return goerror.ErrNotFound
		}

		_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
			Number:  "010-1234-5678",
			OtpCode: "483920",
		})
		wantDetail(t, err, "already_consumed")
	})
}
