package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
)

func testAccount(t *testing.T, password string) *entity.AccountLoginInfo {
	t.Helper()

	return &entity.AccountLoginInfo{
		ID:          7,
		Email:       "user@example.com",
		Username:    "user",
		Nickname:    "User",
		Password:    mustHash(t, hash.NewBcrypt(4, "test-pepper"), password),
		PhoneNumber: "010-1234-5678",
	}
}

func TestUsecaseLogin(t *testing.T) {
	t.Run("EmailLoginIssuesSession", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		account := testAccount(t, "s3curePassword!")
		env.db.getAccountLoginInfoByEmail = func(_ context.Context, email string) (*entity.AccountLoginInfo, error) {
			if email != "user@example.com" {
				t.Errorf("lookup email = %q", email)
			}
			return account, nil
		}

		var stored entity.RefreshToken
		env.db.createRefreshToken = func(_ context.Context, in entity.RefreshToken) error {
			stored = in
			return nil
		}

		var lastLoginType entity.LoginType
		env.db.updateAccountLastLogin = func(_ context.Context, accountID int64, _ time.Time, lt entity.LoginType) error {
			if accountID != account.ID {
				t.Errorf("last login account id = %d", accountID)
			}
			lastLoginType = lt
			return nil
		}

		out, err := uc.Login(context.Background(), LoginInput{
			Email:    "User@Example.com",
			Password: "s3curePassword!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if out.AccessToken == "" {
			t.Error("AccessToken is empty")
		}
		if out.RefreshToken == "" {
			t.Error("RefreshToken is empty")
		}
		if out.RefreshToken == stored.Token {
			t.Error("refresh token must be stored hashed")
		}
		if !env.hmac.Verify(stored.Token, out.RefreshToken) {
			t.Error("stored hash does not verify against the issued refresh token")
		}
		if want := testNow.Add(7 * 24 * time.Hour); !stored.ExpiresAt.Equal(want) {
			t.Errorf("refresh ExpiresAt = %v, want %v", stored.ExpiresAt, want)
		}
		if lastLoginType != entity.LoginTypeEmail {
			t.Errorf("last login type = %v, want email", lastLoginType)
		}
		if out.LastLoginAt != nil {
			t.Errorf("first login LastLoginAt = %v, want nil", out.LastLoginAt)
		}
	})

	t.Run("ReturnsPreviousLoginTimestamp", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		previous := testNow.Add(-48 * time.Hour)
		account := testAccount(t, "s3curePassword!")
		account.LastLoginAt = &previous

		env.db.getAccountLoginInfoByEmail = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return account, nil
		}
		env.db.createRefreshToken = func(context.Context, entity.RefreshToken) error { return nil }
		env.db.updateAccountLastLogin = func(context.Context, int64, time.Time, entity.LoginType) error { return nil }

		out, err := uc.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "s3curePassword!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if out.LastLoginAt == nil || !out.LastLoginAt.Equal(previous) {
			t.Errorf("LastLoginAt = %v, want previous login %v", out.LastLoginAt, previous)
		}
	})

	t.Run("PhoneLoginUsesNumberLookup", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		account := testAccount(t, "s3curePassword!")
		env.db.getAccountLoginInfoByNumber = func(_ context.Context, number string) (*entity.AccountLoginInfo, error) {
			if number != "010-1234-5678" {
				t.Errorf("lookup number = %q", number)
			}
			return account, nil
		}
		env.db.createRefreshToken = func(context.Context, entity.RefreshToken) error { return nil }
		env.db.updateAccountLastLogin = func(context.Context, int64, time.Time, entity.LoginType) error { return nil }

		out, err := uc.Login(context.Background(), LoginInput{
			LoginType:   entity.LoginTypePhone,
			PhoneNumber: "010-1234-5678",
			Password:    "s3curePassword!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if out.Account.ID != account.ID {
			t.Errorf("account id = %d, want %d", out.Account.ID, account.ID)
		}
	})

	t.Run("RejectsUnknownAccount", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getAccountLoginInfoByEmail = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return nil, goerror.ErrNotFound
		}

		_, err := uc.Login(context.Background(), LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever!",
		})
		wantDetail(t, err, "no_exist_user")
	})

	t.Run("RejectsWrongPassword", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getAccountLoginInfoByEmail = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return testAccount(t, "s3curePassword!"), nil
		}

		_, err := uc.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "not-the-password",
		})
		wantDetail(t, err, "wrong_password")
	})

	t.Run("RejectsPhoneLoginWithoutNumber", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.Login(context.Background(), LoginInput{
			LoginType: entity.LoginTypePhone,
			Password:  "whatever!",
		})
		if err == nil {
			t.Fatal("Login() error = nil, want invalid input")
		}
	})

	t.Run("SucceedsWhenLastLoginUpdateFails", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		env.db.getAccountLoginInfoByEmail = func(context.Context, string) (*entity.AccountLoginInfo, error) {
			return testAccount(t, "s3curePassword!"), nil
		}
		env.db.createRefreshToken = func(context.Context, entity.RefreshToken) error { return nil }
		env.db.updateAccountLastLogin = func(context.Context, int64, time.Time, entity.LoginType) error {
			return errUnexpectedCall
		}

		if _, err := uc.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "s3curePassword!",
		}); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})
}
