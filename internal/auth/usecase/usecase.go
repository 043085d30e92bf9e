package usecase

import (
	"context"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/clock"
	"github.com/rahmatsubandi/veriauth/internal/pkg/config"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/jwt"
	"github.com/rahmatsubandi/veriauth/internal/pkg/otp"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	OtpID     int64
	Number    string
	Code      string
	AuthType  entity.AuthOtpType
	ExpiresAt time.Time
}

type AccountRegisteredEvent struct {
	AccountID int64
	Email     string
	Nickname  string
	Number    string
}

type PasswordChangedEvent struct {
	AccountID int64
	Email     string
	Number    string
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
	PublishAccountRegistered(ctx context.Context, msg AccountRegisteredEvent) error
	PublishPasswordChanged(ctx context.Context, msg PasswordChangedEvent) error
}

type repoDB interface {
	GetLatestOtpByNumber(ctx context.Context, number string) (*entity.OtpRecord, error)
	GetAccountLoginInfoByEmail(ctx context.Context, email string) (*entity.AccountLoginInfo, error)
	GetAccountLoginInfoByNumber(ctx context.Context, number string) (*entity.AccountLoginInfo, error)
	GetAccountRefreshToken(ctx context.Context, tokenHash string) (*entity.AccountRefreshToken, error)

	CreateOtpRecord(ctx context.Context, in entity.NewOtpRecord) error
	CreateRefreshToken(ctx context.Context, in entity.RefreshToken) error

	MarkOtpVerified(ctx context.Context, otpID int64, consumedCode string, verifiedAt time.Time) error
	UpdateAccountLastLogin(ctx context.Context, accountID int64, at time.Time, loginType entity.LoginType) error
	UpdateAccountPassword(ctx context.Context, accountID int64, passwordHash string) error
	RevokeAllRefreshToken(ctx context.Context, accountID int64) error

	SpendOtpAndCreateAccount(ctx context.Context, in entity.SpendOtpAndCreateAccount) error
	RotateRefreshToken(ctx context.Context, in entity.RotateRefreshToken) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	bcrypt        hash.Hash
	codegen       otp.Generator
	uid           uid.NumberID
	oid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	CodeGenerator otp.Generator
	UID           uid.NumberID
	OID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		codegen:       dep.CodeGenerator,
		uid:           dep.UID,
		oid:           dep.OID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
