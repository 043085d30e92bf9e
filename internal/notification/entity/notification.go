package entity

import (
	"time"

	"github.com/rahmatsubandi/veriauth/internal/pkg/valueobject"
)

// OtpDelivery is one attempt to hand a verification code to its recipient.
type OtpDelivery struct {
	ID        int64
	OtpID     int64
	Number    string
	Channel   Channel
	Recipient string
	Status    DeliveryStatus
	Reason    string
	Meta      valueobject.JSONMap
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateOtpDelivery struct {
	ID        int64
	OtpID     int64
	Number    string
	Channel   Channel
	Recipient string
	Status    DeliveryStatus
	Meta      valueobject.JSONMap
}

type UpdateOtpDeliveryStatus struct {
	ID     int64
	Status DeliveryStatus
	Reason string
}
