package entity

// Channel is the delivery transport for a verification code.
type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelEmail   Channel = 1
	ChannelSms     Channel = 2
)

// ChannelFromAuthType maps the issuing module's auth type onto a transport.
func ChannelFromAuthType(str string) Channel {
	switch str {
	case "EMAIL":
		return ChannelEmail
	case "PHONE":
		return ChannelSms
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSms:
		return "sms"
	default:
		return "Unknown"
	}
}

// DeliveryStatus tracks the lifecycle of one delivery attempt.
type DeliveryStatus int16

const (
	DeliveryStatusUnknown DeliveryStatus = 0
	DeliveryStatusPending DeliveryStatus = 1
	DeliveryStatusSent    DeliveryStatus = 2
	DeliveryStatusFailed  DeliveryStatus = 3
	DeliveryStatusSkipped DeliveryStatus = 4
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusPending:
		return "pending"
	case DeliveryStatusSent:
		return "sent"
	case DeliveryStatusFailed:
		return "failed"
	case DeliveryStatusSkipped:
		return "skipped"
	default:
		return "Unknown"
	}
}
