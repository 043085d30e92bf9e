package usecase

import (
	"context"
	"time"

	"github.com/rahmatsubandi/veriauth/internal/notification/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
	"github.com/samber/lo"
)

type ListDeliveriesInput struct {
	Number string `validate:"required"`
	Limit  int32
}

type DeliveryItem struct {
	ID        int64
	OtpID     int64
	Channel   string
	Recipient string
	Status    string
	Reason    string
	CreatedAt time.Time
}

type ListDeliveriesOutput struct {
	Items []DeliveryItem
}

// ListDeliveries returns recent delivery attempts for a number, newest
// first. Recipients are masked; this is an operational surface, not a way
// to read codes back.
func (s *Usecase) ListDeliveries(ctx context.Context, in ListDeliveriesInput) (*ListDeliveriesOutput, error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.repoDB.ListOtpDeliveriesByNumber(ctx, in.Number, limit)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	items := lo.Map(rows, func(d entity.OtpDelivery, _ int) DeliveryItem {
		recipient := d.Recipient
		if d.Channel == entity.ChannelSms {
			recipient = maskNumber(d.Recipient)
		}

		return DeliveryItem{
			ID:        d.ID,
			OtpID:     d.OtpID,
			Channel:   d.Channel.String(),
			Recipient: recipient,
			Status:    d.Status.String(),
			Reason:    d.Reason,
			CreatedAt: d.CreatedAt,
		}
	})

	return &ListDeliveriesOutput{Items: items}, nil
}
