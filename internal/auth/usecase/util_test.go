package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/jwt"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
)

var errUnexpectedCall = errors.New("unexpected repo call")

type fakeRepoDB struct {
	getLatestOtpByNumber        func(ctx context.Context, number string) (*entity.OtpRecord, error)
	getAccountLoginInfoByEmail  func(ctx context.Context, email string) (*entity.AccountLoginInfo, error)
	getAccountLoginInfoByNumber func(ctx context.Context, number string) (*entity.AccountLoginInfo, error)
	getAccountRefreshToken      func(ctx context.Context, tokenHash string) (*entity.AccountRefreshToken, error)
	createOtpRecord             func(ctx context.Context, in entity.NewOtpRecord) error
	createRefreshToken          func(ctx context.Context, in entity.RefreshToken) error
	markOtpVerified             func(ctx context.Context, otpID int64, consumedCode string, verifiedAt time.Time) error
	updateAccountLastLogin      func(ctx context.Context, accountID int64, at time.Time, loginType entity.LoginType) error
	updateAccountPassword       func(ctx context.Context, accountID int64, passwordHash string) error
	revokeAllRefreshToken       func(ctx context.Context, accountID int64) error
	spendOtpAndCreateAccount    func(ctx context.Context, in entity.SpendOtpAndCreateAccount) error
	rotateRefreshToken          func(ctx context.Context, in entity.RotateRefreshToken) error
}

func (f *fakeRepoDB) GetLatestOtpByNumber(ctx context.Context, number string) (*entity.OtpRecord, error) {
	if f.getLatestOtpByNumber == nil {
		return nil, errUnexpectedCall
	}
	return f.getLatestOtpByNumber(ctx, number)
}

func (f *fakeRepoDB) GetAccountLoginInfoByEmail(ctx context.Context, email string) (*entity.AccountLoginInfo, error) {
	if f.getAccountLoginInfoByEmail == nil {
		return nil, errUnexpectedCall
	}
	return f.getAccountLoginInfoByEmail(ctx, email)
}

func (f *fakeRepoDB) GetAccountLoginInfoByNumber(ctx context.Context, number string) (*entity.AccountLoginInfo, error) {
	if f.getAccountLoginInfoByNumber == nil {
		return nil, errUnexpectedCall
	}
	return f.getAccountLoginInfoByNumber(ctx, number)
}

func (f *fakeRepoDB) GetAccountRefreshToken(ctx context.Context, tokenHash string) (*entity.AccountRefreshToken, error) {
	if f.getAccountRefreshToken == nil {
		return nil, errUnexpectedCall
	}
	return f.getAccountRefreshToken(ctx, tokenHash)
}

func (f *fakeRepoDB) CreateOtpRecord(ctx context.Context, in entity.NewOtpRecord) error {
	if f.createOtpRecord == nil {
		return errUnexpectedCall
	}
	return f.createOtpRecord(ctx, in)
}

func (f *fakeRepoDB) CreateRefreshToken(ctx context.Context, in entity.RefreshToken) error {
	if f.createRefreshToken == nil {
		return errUnexpectedCall
	}
	return f.createRefreshToken(ctx, in)
}

func (f *fakeRepoDB) MarkOtpVerified(ctx context.Context, otpID int64, consumedCode string, verifiedAt time.Time) error {
	if f.markOtpVerified == nil {
		return errUnexpectedCall
	}
	return f.markOtpVerified(ctx, otpID, consumedCode, verifiedAt)
}

func (f *fakeRepoDB) UpdateAccountLastLogin(ctx context.Context, accountID int64, at time.Time, loginType entity.LoginType) error {
	if f.updateAccountLastLogin == nil {
		return errUnexpectedCall
	}
	return f.updateAccountLastLogin(ctx, accountID, at, loginType)
}

func (f *fakeRepoDB) UpdateAccountPassword(ctx context.Context, accountID int64, passwordHash string) error {
	if f.updateAccountPassword == nil {
		return errUnexpectedCall
	}
	return f.updateAccountPassword(ctx, accountID, passwordHash)
}

func (f *fakeRepoDB) RevokeAllRefreshToken(ctx context.Context, accountID int64) error {
	if f.revokeAllRefreshToken == nil {
		return errUnexpectedCall
	}
	return f.revokeAllRefreshToken(ctx, accountID)
}

func (f *fakeRepoDB) SpendOtpAndCreateAccount(ctx context.Context, in entity.SpendOtpAndCreateAccount) error {
	if f.spendOtpAndCreateAccount == nil {
		return errUnexpectedCall
	}
	return f.spendOtpAndCreateAccount(ctx, in)
}

func (f *fakeRepoDB) RotateRefreshToken(ctx context.Context, in entity.RotateRefreshToken) error {
	if f.rotateRefreshToken == nil {
		return errUnexpectedCall
	}
	return f.rotateRefreshToken(ctx, in)
}

type fakeMessaging struct {
	published  []OtpIssuedEvent
	registered []AccountRegisteredEvent
	pwChanged  []PasswordChangedEvent
	err        error
}

func (f *fakeMessaging) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeMessaging) PublishAccountRegistered(_ context.Context, msg AccountRegisteredEvent) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakeMessaging) PublishPasswordChanged(_ context.Context, msg PasswordChangedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.pwChanged = append(f.pwChanged, msg)
	return nil
}

// fakeIdempotency runs fn directly unless err is preset.
type fakeIdempotency struct {
	err error
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeConfig map[string]any

func (c fakeConfig) Close() error                { return nil }
func (c fakeConfig) GetBool(key string) bool     { v, _ := c[key].(bool); return v }
func (c fakeConfig) GetString(key string) string { v, _ := c[key].(string); return v }
func (c fakeConfig) GetBinary(string) []byte     { return nil }
func (c fakeConfig) GetArray(string) []string    { return nil }
func (c fakeConfig) GetMap(string) map[string]string {
	return nil
}
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

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqNumberID struct {
	next int64
}

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedStringID struct {
	value string
}

func (s fixedStringID) Generate() string { return s.value }

type fixedCodegen struct {
	code string
	err  error
}

func (f fixedCodegen) Generate() (string, error) { return f.code, f.err }

var testNow = time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)

type testEnv struct {
	db    *fakeRepoDB
	msg   *fakeMessaging
	idemp *fakeIdempotency
	cfg   fakeConfig
	hmac  hash.Hash
}

func newTestUsecase(t *testing.T) (*Usecase, *testEnv) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	clk := fixedClock{now: testNow}
	hmac := hash.NewHMACSHA256("test-hmac-secret")

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "veriauth-test",
		Audiences:  []string{"veriauth"},
		TTLMinutes: 15 * time.Minute,
		Clock:      clk,
		UUID:       fixedStringID{value: "jti-1"},
	})
	if err != nil {
		t.Fatalf("jwt.NewHS512() error = %v", err)
	}

	env := &testEnv{
		db:    &fakeRepoDB{},
		msg:   &fakeMessaging{},
		idemp: &fakeIdempotency{},
		cfg: fakeConfig{
			"modules.auth.otp_validity_seconds":   3 * time.Minute,
			"modules.auth.otp_send_lock_seconds":  time.Minute,
			"modules.auth.refresh_token_ttl_days": 7 * 24 * time.Hour,
		},
		hmac: hmac,
	}

	uc := New(Dependency{
		RepoDB:        env.db,
		RepoMessaging: env.msg,
		Idempotency:   env.idemp,
		Validator:     v10,
		Config:        env.cfg,
		HMAC:          hmac,
		Bcrypt:        hash.NewBcrypt(4, "test-pepper"),
		CodeGenerator: fixedCodegen{code: "483920"},
		UID:           &seqNumberID{},
		OID:           fixedStringID{value: "obj-refresh-token"},
		Clock:         clk,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
	})

	return uc, env
}

// wantDetail asserts err is a business error with the given detail identifier.
func wantDetail(t *testing.T, err error, detail string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if gerr.Detail() != detail {
		t.Fatalf("Detail() = %q, want %q", gerr.Detail(), detail)
	}
}

func mustHash(t *testing.T, h hash.Hash, plaintext string) string {
	t.Helper()

	out, err := h.Hash(plaintext)
	if err != nil {
		t.Fatalf("Hash(%q) error = %v", plaintext, err)
	}
	return string(out)
}

func issuedOtp(codeHash string) *entity.OtpRecord {
	return &entity.OtpRecord{
		ID:              42,
		Number:          "010-1234-5678",
		CodeHash:        codeHash,
		AuthType:        entity.AuthOtpTypeEmail,
		ValiditySeconds: 180,
		CreatedAt:       testNow.Add(-time.Minute),
	}
}

func verifiedOtp(codeHash, consumedCode string) *entity.OtpRecord {
	rec := issuedOtp(codeHash)
	verifiedAt := testNow.Add(-30 * time.Second)
	rec.Authenticated = true
	rec.ConsumedCode = consumedCode
	rec.VerifiedAt = &verifiedAt
	return rec
}
