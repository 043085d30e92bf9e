package event

const AccountRegisteredDestination string = "account_registered"
const AccountRegisteredConsumerNotification string = "account_registered_notification"

type AccountRegisteredMessage struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Number    string `json:"number"`
}
