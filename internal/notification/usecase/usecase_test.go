package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/notification/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/mail"
	"github.com/rahmatsubandi/veriauth/internal/pkg/sms"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
)

type fakeRepoDB struct {
	emailByNumber map[string]string
	created       []entity.CreateOtpDelivery
	updated       []entity.UpdateOtpDeliveryStatus
	rows          []entity.OtpDelivery
	listErr       error
}

func (f *fakeRepoDB) GetAccountEmailByNumber(_ context.Context, number string) (string, error) {
	email, ok := f.emailByNumber[number]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return email, nil
}

func (f *fakeRepoDB) CreateOtpDelivery(_ context.Context, in entity.CreateOtpDelivery) error {
	f.created = append(f.created, in)
	return nil
}

func (f *fakeRepoDB) UpdateOtpDeliveryStatus(_ context.Context, in entity.UpdateOtpDeliveryStatus) error {
	f.updated = append(f.updated, in)
	return nil
}

func (f *fakeRepoDB) ListOtpDeliveriesByNumber(context.Context, string, int32) ([]entity.OtpDelivery, error) {
	return f.rows, f.listErr
}

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSMS struct {
	sent []sms.Message
	err  error
}

func (f *fakeSMS) Send(_ context.Context, msg sms.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeConfig map[string]any

func (c fakeConfig) Close() error                       { return nil }
func (c fakeConfig) GetBool(key string) bool            { v, _ := c[key].(bool); return v }
func (c fakeConfig) GetString(key string) string        { v, _ := c[key].(string); return v }
func (c fakeConfig) GetBinary(string) []byte            { return nil }
func (c fakeConfig) GetArray(string) []string           { return nil }
func (c fakeConfig) GetMap(string) map[string]string    { return nil }
func (c fakeConfig) GetSecond(key string) time.Duration { v, _ := c[key].(time.Duration); return v }
func (c fakeConfig) GetMinute(key string) time.Duration { v, _ := c[key].(time.Duration); return v }
func (c fakeConfig) GetHour(key string) time.Duration   { v, _ := c[key].(time.Duration); return v }
func (c fakeConfig) GetDay(key string) time.Duration    { v, _ := c[key].(time.Duration); return v }
func (c fakeConfig) GetInt(key string) int              { v, _ := c[key].(int); return v }
func (c fakeConfig) GetInt32(key string) int32          { v, _ := c[key].(int32); return v }
func (c fakeConfig) GetInt64(key string) int64          { v, _ := c[key].(int64); return v }
func (c fakeConfig) GetUint(key string) uint            { v, _ := c[key].(uint); return v }
func (c fakeConfig) GetUint16(key string) uint16        { v, _ := c[key].(uint16); return v }
func (c fakeConfig) GetUint32(key string) uint32        { v, _ := c[key].(uint32); return v }
func (c fakeConfig) GetUint64(key string) uint64        { v, _ := c[key].(uint64); return v }
func (c fakeConfig) GetFloat32(key string) float32      { v, _ := c[key].(float32); return v }
func (c fakeConfig) GetFloat64(key string) float64      { v, _ := c[key].(float64); return v }

type seqNumberID struct {
	next int64
}

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type testEnv struct {
	db   *fakeRepoDB
	mail *fakeMail
	sms  *fakeSMS
}

func newTestUsecase(t *testing.T) (*Usecase, *testEnv) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	env := &testEnv{
		db:   &fakeRepoDB{emailByNumber: map[string]string{}},
		mail: &fakeMail{},
		sms:  &fakeSMS{},
	}

	uc := NewNotification(Dependency{
		RepoDB:     env.db,
		RepoMail:   env.mail,
		RepoSMS:    env.sms,
		Config:     fakeConfig{"app.name": "VeriAuth"},
		UID:        &seqNumberID{},
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, env
}

func TestMaskNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "010-1234-5678", want: "010-****-5678"},
		{in: "010-123-4567", want: "010-***-4567"},
		{in: "no-dashes", want: "***"},
	}

	for _, tc := range tests {
		if got := maskNumber(tc.in); got != tc.want {
			t.Errorf("maskNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUsecaseConsumeOtpIssued(t *testing.T) {
	validInput := func() ConsumeOtpIssuedInput {
		return ConsumeOtpIssuedInput{
			OtpID:     42,
			Number:    "010-1234-5678",
			Code:      "483920",
			AuthType:  "PHONE",
			ExpiresAt: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		}
	}

	t.Run("DeliversOverSms", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		if err := uc.ConsumeOtpIssued(context.Background(), validInput()); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v", err)
		}

		if len(env.sms.sent) != 1 {
			t.Fatalf("sms sent = %d, want 1", len(env.sms.sent))
		}
		if env.sms.sent[0].To != "010-1234-5678" {
			t.Errorf("sms recipient = %q", env.sms.sent[0].To)
		}

		if len(env.db.created) != 1 || env.db.created[0].Channel != entity.ChannelSms {
			t.Fatalf("created = %+v", env.db.created)
		}
		if len(env.db.updated) != 1 || env.db.updated[0].Status != entity.DeliveryStatusSent {
			t.Errorf("updated = %+v", env.db.updated)
		}
	})

	t.Run("DeliversOverEmail", func(t *testing.T) {
		uc, env := newTestUsecase(t)
		env.db.emailByNumber["010-1234-5678"] = "user@example.com"

		in := validInput()
		in.AuthType = "EMAIL"

		if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v", err)
		}

		if len(env.mail.sent) != 1 {
			t.Fatalf("mail sent = %d, want 1", len(env.mail.sent))
		}
		if got := env.mail.sent[0].To; len(got) != 1 || got[0] != "user@example.com" {
			t.Errorf("mail recipient = %v", got)
		}
	})

	t.Run("SkipsEmailWithoutAccount", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		in := validInput()
		in.AuthType = "EMAIL"

		if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v", err)
		}

		if len(env.mail.sent) != 0 {
			t.Errorf("mail sent = %d, want 0", len(env.mail.sent))
		}
		if len(env.db.created) != 1 || env.db.created[0].Status != entity.DeliveryStatusSkipped {
			t.Fatalf("created = %+v", env.db.created)
		}
	})

	t.Run("RecordsFailedDelivery", func(t *testing.T) {
		uc, env := newTestUsecase(t)
		env.sms.err = errors.New("gateway down")

		if err := uc.ConsumeOtpIssued(context.Background(), validInput()); err == nil {
			t.Fatal("ConsumeOtpIssued() error = nil, want gateway error")
		}

		if len(env.db.updated) != 1 || env.db.updated[0].Status != entity.DeliveryStatusFailed {
			t.Fatalf("updated = %+v", env.db.updated)
		}
	})

	t.Run("DropsInvalidPayload", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		if err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{}); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v, want nil for invalid payload", err)
		}
		if len(env.db.created) != 0 {
			t.Errorf("created = %+v, want none", env.db.created)
		}
	})

	t.Run("DropsUnknownChannel", func(t *testing.T) {
		uc, env := newTestUsecase(t)

		in := validInput()
		in.AuthType = "CARRIER_PIGEON"

		if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v, want nil for unknown channel", err)
		}
		if len(env.db.created) != 0 {
			t.Errorf("created = %+v, want none", env.db.created)
		}
	})
}

func TestUsecaseListDeliveries(t *testing.T) {
	t.Run("MasksSmsRecipients", func(t *testing.T) {
		uc, env := newTestUsecase(t)
		env.db.rows = []entity.OtpDelivery{
			{ID: 1, OtpID: 42, Channel: entity.ChannelSms, Recipient: "010-1234-5678", Status: entity.DeliveryStatusSent},
			{ID: 2, OtpID: 43, Channel: entity.ChannelEmail, Recipient: "user@example.com", Status: entity.DeliveryStatusFailed, Reason: "smtp timeout"},
		}

		out, err := uc.ListDeliveries(context.Background(), ListDeliveriesInput{Number: "010-1234-5678"})
		if err != nil {
			t.Fatalf("ListDeliveries() error = %v", err)
		}

		if len(out.Items) != 2 {
			t.Fatalf("items = %d, want 2", len(out.Items))
		}
		if out.Items[0].Recipient != "010-****-5678" {
			t.Errorf("sms recipient = %q, want masked", out.Items[0].Recipient)
		}
		if out.Items[1].Recipient != "user@example.com" {
			t.Errorf("email recipient = %q", out.Items[1].Recipient)
		}
		if out.Items[1].Status != "failed" || out.Items[1].Reason != "smtp timeout" {
			t.Errorf("failed item = %+v", out.Items[1])
		}
	})

	t.Run("RequiresNumber", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		if _, err := uc.ListDeliveries(context.Background(), ListDeliveriesInput{}); err == nil {
			t.Fatal("ListDeliveries() error = nil, want validation error")
		}
	})
}
