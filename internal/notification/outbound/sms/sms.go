package sms

import (
	"context"

	"github.com/rahmatsubandi/veriauth/internal/pkg/instrument"
	pkgsms "github.com/rahmatsubandi/veriauth/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

type SMS struct {
	client pkgsms.SMS
	ins    instrument.Instrumentation
}

func New(client pkgsms.SMS, ins instrument.Instrumentation) *SMS {
	return &SMS{client: client, ins: ins}
}

func (s *SMS) Send(ctx context.Context, msg pkgsms.Message) error {
	ctx, span := s.ins.Tracer("notification.outbound.sms").Start(ctx, "Send")
	defer span.End()

	if err := s.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
