package usecase

import (
	"context"
	"strings"

	"github.com/rahmatsubandi/veriauth/internal/notification/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/config"
	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	"github.com/rahmatsubandi/veriauth/internal/pkg/mail"
	"github.com/rahmatsubandi/veriauth/internal/pkg/sms"
	"github.com/rahmatsubandi/veriauth/internal/pkg/uid"
	"github.com/rahmatsubandi/veriauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetAccountEmailByNumber(ctx context.Context, number string) (string, error)
	CreateOtpDelivery(ctx context.Context, in entity.CreateOtpDelivery) error
	UpdateOtpDeliveryStatus(ctx context.Context, in entity.UpdateOtpDeliveryStatus) error
	ListOtpDeliveriesByNumber(ctx context.Context, number string, limit int32) ([]entity.OtpDelivery, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoSMS interface {
	Send(ctx context.Context, msg sms.Message) error
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	repoSMS   repoSMS
	cfg       config.Config
	uid       uid.NumberID
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	RepoSMS    repoSMS
	Config     config.Config
	UID        uid.NumberID
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		repoSMS:   dep.RepoSMS,
		cfg:       dep.Config,
		uid:       dep.UID,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// maskNumber hides the middle group of a dashed number: 010-1234-5678
// becomes 010-****-5678.
func maskNumber(number string) string {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return "***"
	}

	return parts[0] + "-" + strings.Repeat("*", len(parts[1])) + "-" + parts[2]
}
