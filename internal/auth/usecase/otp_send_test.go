package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
)

func TestUsecaseOtpSend(t *testing.T) {
	t.Run("IssuesCodeAndPublishesEvent", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		var created entity.NewOtpRecord
		env.db.createOtpRecord = func(_ context.Context, in entity.NewOtpRecord) error {
			created = in
			return nil
		}

		out, err := uc.OtpSend(context.Background(), OtpSendInput{Number: "010-1234-5678"})
		if err != nil {
			t.Fatalf("OtpSend() error = %v", err)
		}

		if out.OtpCode != "483920" {
			t.Errorf("OtpCode = %q, want %q", out.OtpCode, "483920")
		}
		if out.AuthType != entity.AuthOtpTypeEmail {
			t.Errorf("AuthType = %v, want default email", out.AuthType)
		}
		if want := testNow.Add(3 * time.Minute); !out.ExpiredAt.Equal(want) {
			t.Errorf("ExpiredAt = %v, want %v", out.ExpiredAt, want)
		}

		if created.Number != "010-1234-5678" {
			t.Errorf("created record number = %q", created.Number)
		}
		if !created.CreatedAt.Equal(testNow) {
			t.Errorf("created record CreatedAt = %v, want %v", created.CreatedAt, testNow)
		}
		if created.ValiditySeconds != 180 {
			t.Errorf("created record validity = %d, want 180", created.ValiditySeconds)
		}
		if created.CodeHash == "" || created.CodeHash == "483920" {
			t.Errorf("created record must store a hash, got %q", created.CodeHash)
		}
		if !env.hmac.Verify(created.CodeHash, "483920") {
			t.Error("stored hash does not verify against the issued code")
		}

		if len(env.msg.published) != 1 {
			t.Fatalf("published events = %d, want 1", len(env.msg.published))
		}
		if env.msg.published[0].Code != "483920" || env.msg.published[0].OtpID != created.ID {
			t.Errorf("published event = %+v", env.msg.published[0])
		}

		// The deadline the verify gate enforces is created_at plus validity;
		// the response and the event must equal it exactly.
		deadline := created.CreatedAt.Add(time.Duration(created.ValiditySeconds) * time.Second)
		if !out.ExpiredAt.Equal(deadline) {
			t.Errorf("ExpiredAt = %v, want stored deadline %v", out.ExpiredAt, deadline)
		}
		if !env.msg.published[0].ExpiresAt.Equal(deadline) {
			t.Errorf("event ExpiresAt = %v, want stored deadline %v", env.msg.published[0].ExpiresAt, deadline)
		}
	})

	t.Run("RejectsMalformedNumber", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.OtpSend(context.Background(), OtpSendInput{Number: "01012345678"})
		wantDetail(t, err, "invalid_number")
	})

	t.Run("RejectsUnknownAuthType", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.OtpSend(context.Background(), OtpSendInput{
			Number:   "010-1234-5678",
			AuthType: entity.AuthOtpType(9),
		})
		wantDetail(t, err, "invalid_auth_type")
	})

	t.Run("AbsorbsDuplicateRequest", func(t *testing.T) {
		uc, env := newTestUsecase(t)
		env.idemp.err = idempotency.ErrAlreadyCompleted

		_, err := uc.OtpSend(context.Background(), OtpSendInput{Number: "010-1234-5678"})
		if err == nil {
			t.Fatal("OtpSend() error = nil, want conflict")
		}
		if len(env.msg.published) != 0 {
			t.Errorf("published events = %d, want 0", len(env.msg.published))
		}
	})

	t.Run("SucceedsWhenPublishFails", func(t *testing.T) {
		uc, env := newTestUsecase(t)
		env.db.createOtpRecord = func(context.Context, entity.NewOtpRecord) error { return nil }
		env.msg.err = errUnexpectedCall

		out, err := uc.OtpSend(context.Background(), OtpSendInput{Number: "010-1234-5678"})
		if err != nil {
			t.Fatalf("OtpSend() error = %v", err)
		}
		if out.OtpCode == "" {
			t.Error("OtpCode is empty")
		}
	})
}
