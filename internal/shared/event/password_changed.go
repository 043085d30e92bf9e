package event

const PasswordChangedDestination string = "password_changed"
const PasswordChangedConsumerNotification string = "password_changed_notification"

type PasswordChangedMessage struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Number    string `json:"number"`
}
