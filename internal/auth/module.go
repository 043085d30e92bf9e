package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rahmatsubandi/veriauth/internal/auth/inbound"
	"github.com/rahmatsubandi/veriauth/internal/auth/outbound/db"
	"github.com/rahmatsubandi/veriauth/internal/auth/outbound/mq"
	"github.com/rahmatsubandi/veriauth/internal/auth/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/clock"
	"github.com/rahmatsubandi/veriauth/internal/pkg/config"
	"github.com/rahmatsubandi/veriauth/internal/pkg/hash"
	"github.com/rahmatsubandi/veriauth/internal/pkg/idempotency"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/jwt"
	"github.com/rahmatsubandi/veriauth/internal/pkg/messaging"
	"github.com/rahmatsubandi/veriauth/internal/pkg/otp"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn        *pgxpool.Pool              `validate:"required"`
	CacheConn     *redis.Client              `validate:"required"`
	Router        *router.Router             `validate:"required"`
	Idempotency   idempotency.Idempotency    `validate:"required"`
	Messaging     messaging.Messaging        `validate:"required"`
	Config        config.Config              `validate:"required"`
	Instrument    instrument.Instrumentation `validate:"required"`
	UID           uid.NumberID               `validate:"required"`
	OID           uid.StringID               `validate:"required"`
	HMAC          hash.Hash                  `validate:"required"`
	Bcrypt        hash.Hash                  `validate:"required"`
	CodeGenerator otp.Generator              `validate:"required"`
	Clock         clock.Clocker              `validate:"required"`
	Validator     validator.Validator        `validate:"required"`
	JWT           jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		CodeGenerator: dep.CodeGenerator,
		UID:           dep.UID,
		OID:           dep.OID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
