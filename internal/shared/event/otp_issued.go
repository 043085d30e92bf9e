package event

const OtpIssuedDestination string = "otp_issued"
const OtpIssuedConsumerNotification string = "otp_issued_notification"

type OtpIssuedMessage struct {
	OtpID     int64  `json:"otp_id"`
	Number    string `json:"number"`
	Code      string `json:"code"`
	AuthType  string `json:"auth_type"`
	ExpiresAt string `json:"expires_at"`
}
